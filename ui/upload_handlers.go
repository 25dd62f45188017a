package ui

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"adpulse/adapters/excel"
	"adpulse/domain/ads"
	apperrors "adpulse/internal/errors"
	"adpulse/internal/normalize"
	"adpulse/internal/session"
)

// handleUpload ingests one Excel workbook or CSV export. Sheets that
// cannot be normalized are skipped; the upload as a whole fails only
// when no sheet yields usable rows.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.InvalidInput("missing file field in upload"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "open uploaded file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInternalError, "read uploaded file"))
		return
	}

	wb, err := excel.Read(fileHeader.Filename, data)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "parse uploaded file"))
		return
	}

	rows, notes := normalize.Sheets(wb.Sheets, wb.SheetOrder)
	if len(rows) == 0 {
		respondError(c, ads.ErrNoData)
		return
	}

	sess := s.sessions.Put(session.SourceUpload, fileHeader.Filename, rows, notes)
	log.Printf("[Server] Upload %s -> session %s (%d rows, %d sheets)",
		fileHeader.Filename, sess.ID, len(rows), len(wb.SheetOrder))

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"source":     sess.Source,
		"label":      sess.Label,
		"row_count":  len(rows),
		"notes":      notes,
	})
}
