package game

// Stone камень на доске. ID постоянный, ChainID меняется при слиянии цепей.
type Stone struct {
	ID      int `json:"id" bson:"id"`
	Player  int `json:"player" bson:"player"`
	ChainID int `json:"chain_id" bson:"chain_id"`
}

// Point пункт доски. TerritoryID 0 - не размечен.
type Point struct {
	ID          int    `json:"id" bson:"id"`
	X           int    `json:"x" bson:"x"`
	Y           int    `json:"y" bson:"y"`
	Stone       *Stone `json:"stone,omitempty" bson:"stone,omitempty"`
	TerritoryID int    `json:"territory_id,omitempty" bson:"territory_id,omitempty"`
}

func (p *Point) Coords() (int, int) {
	return p.X, p.Y
}

func (p *Point) Occupied() bool {
	return p.Stone != nil
}

func (p *Point) Unoccupied() bool {
	return p.Stone == nil
}

func (p *Point) OccupiedBy(player int) bool {
	return p.Stone != nil && p.Stone.Player == player
}

func (p *Point) OccupiedByOpponentOf(player int) bool {
	return p.Stone != nil && p.Stone.Player != player
}

// Place false, если пункт уже занят.
func (p *Point) Place(stone Stone) bool {
	if p.Occupied() {
		return false
	}
	p.Stone = &stone
	return true
}

func (p *Point) CaptureStone() {
	p.Stone = nil
}

func (p *Point) ClearTerritory() {
	p.TerritoryID = 0
}

func (p *Point) Unmarked() bool {
	return p.TerritoryID == 0
}

func (p *Point) AddToTerritory(id int) {
	p.TerritoryID = id
}
