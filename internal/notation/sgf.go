package notation

import (
	"fmt"
	"strconv"
	"strings"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
)

// Record собирает дерево SGF из истории партии. result пишется в RE как есть
// ("B+R", "W+6.5", "0"), пустой для незавершённой партии.
func Record(match *game.Match, result string) sgf.SGF {
	root := sgf.Node{}
	root.Add("FF", "4")
	root.Add("GM", "1")
	root.Add("SZ", strconv.Itoa(match.BoardSize))
	root.Add("PB", playerName(match, game.PlayerBlack))
	root.Add("PW", playerName(match, game.PlayerWhite))
	if !match.CreatedAt.IsZero() {
		root.Add("DT", match.CreatedAt.Format("2006-01-02"))
	}
	root.Add("RE", result)
	root.Add("KM", strconv.FormatFloat(match.Komi, 'f', 1, 64))
	root.Add("RU", "Japanese")

	tree := &sgf.GameTree{Nodes: []sgf.Node{root}}
	for _, action := range match.History {
		var node sgf.Node
		switch action.Kind {
		case game.ActionMove:
			if action.PointID == nil {
				continue
			}
			x, y := *action.PointID%match.BoardSize, *action.PointID/match.BoardSize
			node.Add(moveIdent(action.Player), FormatCoord(x, y))
		case game.ActionPass:
			node.Add(moveIdent(action.Player), "")
		default:
			continue
		}
		tree.Nodes = append(tree.Nodes, node)
	}
	return sgf.SGF{Root: tree}
}

// WriteSGF сериализует запись партии в текст FF[4].
func WriteSGF(match *game.Match, result string) string {
	record := Record(match, result)
	return Serialize(&record)
}

func Serialize(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		for _, prop := range node.Properties {
			builder.WriteString(prop.Ident)
			for _, v := range prop.Values {
				fmt.Fprintf(builder, "[%s]", escape(v))
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

func escape(v string) string { return escaper.Replace(v) }

func playerName(match *game.Match, number int) string {
	for _, p := range match.Players {
		if p.Number == number && p.Name != "" {
			return p.Name
		}
	}
	return "Player " + strconv.Itoa(number)
}

func moveIdent(player int) string {
	if player == game.PlayerWhite {
		return "W"
	}
	return "B"
}
