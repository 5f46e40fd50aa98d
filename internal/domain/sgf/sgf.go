package sgf

// Property одно свойство узла: идентификатор и значения (AB[aa][bb]).
type Property struct {
	Ident  string
	Values []string
}

// Node узел SGF. Свойства хранятся в порядке добавления.
type Node struct {
	Properties []Property
}

func (n *Node) Add(ident string, values ...string) {
	n.Properties = append(n.Properties, Property{Ident: ident, Values: values})
}

// Value возвращает первое значение свойства.
func (n *Node) Value(ident string) (string, bool) {
	for _, p := range n.Properties {
		if p.Ident == ident && len(p.Values) > 0 {
			return p.Values[0], true
		}
	}
	return "", false
}

// GameTree основная линия партии и варианты
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

type SGF struct {
	Root *GameTree
}
