package format

import "time"

const (
	LongDateLayout  = "02 January 2006"
	ShortDateLayout = "02/01/06"
	StampLayout     = "02 January 2006 15:04"
	FileStampLayout = "20060102_1504"
)

// LongDate renders "02 January 2006", or "-" for the zero time.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(LongDateLayout)
}

// ShortDate renders "02/01/06", or "-" for the zero time.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(ShortDateLayout)
}

// Stamp renders "02 January 2006 15:04" for footers.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// FileStamp renders "20060102_1504" for download filenames.
func FileStamp(t time.Time) string {
	return t.Format(FileStampLayout)
}

// OrDash returns s, or "-" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
