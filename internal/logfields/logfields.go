package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyTemplateID = "template_id"
	KeyKind       = "kind"
	KeyLoadID     = "load_id"
	KeyFiles      = "files"
	KeyTrees      = "trees"
	KeyDocuments  = "documents"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func TemplateID(id string) slog.Attr { return slog.String(KeyTemplateID, id) }
func Kind(k string) slog.Attr        { return slog.String(KeyKind, k) }
func LoadID(id string) slog.Attr     { return slog.String(KeyLoadID, id) }
func Files(n int) slog.Attr          { return slog.Int(KeyFiles, n) }
func Trees(n int) slog.Attr          { return slog.Int(KeyTrees, n) }
func Documents(n int) slog.Attr      { return slog.Int(KeyDocuments, n) }

// Duration records d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
