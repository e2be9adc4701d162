package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studydesk/studydesk/internal/artifact"
)

const exportSheet = "Flashcards"

// handleExportFlashcards turns a reconstructed deck into an .xlsx workbook
// for import into spaced-repetition tools.
func (s *Server) handleExportFlashcards(w http.ResponseWriter, r *http.Request) {
	req, err := decodeExportRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards := req.Cards
	if len(cards) == 0 {
		// Raw response text: run it through the flashcard pipeline.
		a := artifact.Build(req.Text)
		if a.Deck == nil || len(a.Deck.Cards) == 0 {
			writeError(w, http.StatusBadRequest, "no flashcards found in text")
			return
		}
		for _, c := range a.Deck.Cards {
			cards = append(cards, exportCard{Label: c.Label, Front: c.Front, Back: c.Back})
		}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing workbook failed", "error", err)
		}
	}()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not build workbook")
		return
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Warn("removing default sheet failed", "error", err)
	}

	headers := []string{"Card", "Front", "Back"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			writeError(w, http.StatusInternalServerError, "could not build workbook")
			return
		}
	}

	for row, card := range cards {
		label := card.Label
		if label == "" {
			label = fmt.Sprintf("%d", row+1)
		}
		values := []string{label, card.Front, card.Back}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				writeError(w, http.StatusInternalServerError, "could not build workbook")
				return
			}
		}
	}

	filename := fmt.Sprintf("flashcards-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		slog.Error("writing workbook failed", "error", err)
	}
	slog.Info("flashcards exported", "cards", len(cards))
}
