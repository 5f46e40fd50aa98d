package match

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"goban/internal/domain/game"
	"goban/internal/notation"
)

const (
	boardLeft  = 30.0
	boardTop   = 45.0
	boardWidth = 150.0
)

// writeRecordPDF печатает бланк партии: итоговая позиция и список ходов.
func writeRecordPDF(w io.Writer, match game.Match, result string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Match "+match.ID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Match "+match.ID)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	summary := fmt.Sprintf("%dx%d, komi %.1f", match.BoardSize, match.BoardSize, match.Komi)
	if result != "" {
		summary += ", result " + result
	}
	pdf.Cell(0, 6, summary)
	pdf.Ln(6)

	drawBoard(pdf, match)

	pdf.SetY(boardTop + boardWidth + 15)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 4.5, moveList(match), "", "L", false)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawBoard(pdf *gofpdf.Fpdf, match game.Match) {
	size := match.BoardSize
	if size < 2 {
		return
	}
	step := boardWidth / float64(size-1)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "", 7)
	for i := 0; i < size; i++ {
		offset := float64(i) * step
		pdf.Line(boardLeft, boardTop+offset, boardLeft+boardWidth, boardTop+offset)
		pdf.Line(boardLeft+offset, boardTop, boardLeft+offset, boardTop+boardWidth)

		label := notation.FormatCoord(i, i)[:1]
		pdf.Text(boardLeft+offset-1, boardTop-3, label)
		pdf.Text(boardLeft-7, boardTop+offset+1, label)
	}

	radius := step * 0.45
	for _, p := range match.State.Points {
		if p.Unoccupied() {
			continue
		}
		if p.Stone.Player == game.PlayerWhite {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(0, 0, 0)
		}
		pdf.Circle(boardLeft+float64(p.X)*step, boardTop+float64(p.Y)*step, radius, "FD")
	}
}

func moveList(match game.Match) string {
	var sb strings.Builder
	number := 0
	for _, action := range match.History {
		colour := "B"
		if action.Player == game.PlayerWhite {
			colour = "W"
		}
		switch action.Kind {
		case game.ActionMove:
			if action.PointID == nil {
				continue
			}
			number++
			x, y := *action.PointID%match.BoardSize, *action.PointID/match.BoardSize
			fmt.Fprintf(&sb, "%3d. %s %s", number, colour, notation.FormatCoord(x, y))
			if action.Captured > 0 {
				fmt.Fprintf(&sb, " (captures %d)", action.Captured)
			}
		case game.ActionPass:
			number++
			fmt.Fprintf(&sb, "%3d. %s pass", number, colour)
		case game.ActionResign:
			fmt.Fprintf(&sb, "     %s resigns", colour)
		default:
			continue
		}
		sb.WriteByte('\n')
	}
	if sb.Len() == 0 {
		return "No moves."
	}
	return sb.String()
}
