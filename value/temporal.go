package value

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TemporalKind discriminates the nine ISO 8601 temporal shapes a Temporal
// value may take.
type TemporalKind int

const (
	Year TemporalKind = iota
	YearMonth
	LocalDate
	LocalTime
	OffsetTime
	LocalDateTime
	OffsetDateTime
	ZonedDateTime
	Instant
)

func (k TemporalKind) String() string {
	switch k {
	case Year:
		return "year"
	case YearMonth:
		return "year-month"
	case LocalDate:
		return "local-date"
	case LocalTime:
		return "local-time"
	case OffsetTime:
		return "offset-time"
	case LocalDateTime:
		return "local-date-time"
	case OffsetDateTime:
		return "offset-date-time"
	case ZonedDateTime:
		return "zoned-date-time"
	case Instant:
		return "instant"
	default:
		return "unknown-temporal"
	}
}

// Temporal is an ISO 8601 date/time literal of one of the nine TemporalKind
// shapes. The lexical form is kept verbatim as the canonical encoding.
type Temporal struct {
	Sub     TemporalKind
	Lexical string
}

func (t Temporal) Kind() Kind                 { return KindTemporal }
func (t Temporal) Encode(base string) string  { return t.Lexical }
func (t Temporal) Equal(other Value) bool {
	o, ok := other.(Temporal)
	return ok && o.Sub == t.Sub && o.Lexical == t.Lexical
}

var (
	yearPattern           = regexp.MustCompile(`^-?\d{4,}$`)
	yearMonthPattern      = regexp.MustCompile(`^-?\d{4,}-\d{2}$`)
	localDatePattern      = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}$`)
	localTimePattern      = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	offsetTimePattern     = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	localDateTimePattern  = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	offsetDateTimePattern = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	zonedDateTimePattern  = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})\[[A-Za-z0-9_+\-/]+\]$`)
	instantPattern        = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
)

// DecodeTemporal parses an ISO 8601 lexical, dispatching to whichever of the
// nine Temporal shapes matches. Used when the enclosing Shape's datatype is
// the generic Temporal parent tag.
func DecodeTemporal(base, s string) (Value, bool) {
	switch {
	case zonedDateTimePattern.MatchString(s):
		return Temporal{Sub: ZonedDateTime, Lexical: s}, validTimeOfDay(s)
	case instantPattern.MatchString(s):
		return Temporal{Sub: Instant, Lexical: s}, validTimeOfDay(s)
	case offsetDateTimePattern.MatchString(s):
		return Temporal{Sub: OffsetDateTime, Lexical: s}, validTimeOfDay(s)
	case localDateTimePattern.MatchString(s):
		return Temporal{Sub: LocalDateTime, Lexical: s}, validTimeOfDay(s)
	case offsetTimePattern.MatchString(s):
		return Temporal{Sub: OffsetTime, Lexical: s}, validTimeOfDay(s)
	case localTimePattern.MatchString(s):
		return Temporal{Sub: LocalTime, Lexical: s}, validTimeOfDay(s)
	case localDatePattern.MatchString(s):
		return Temporal{Sub: LocalDate, Lexical: s}, true
	case yearMonthPattern.MatchString(s):
		return Temporal{Sub: YearMonth, Lexical: s}, true
	case yearPattern.MatchString(s):
		return Temporal{Sub: Year, Lexical: s}, true
	default:
		return nil, false
	}
}

// DecodeTemporalAs parses s strictly as the given TemporalKind, failing if
// the lexical doesn't match that shape.
func DecodeTemporalAs(sub TemporalKind, base, s string) (Value, bool) {
	var ok bool
	switch sub {
	case Year:
		ok = yearPattern.MatchString(s)
	case YearMonth:
		ok = yearMonthPattern.MatchString(s)
	case LocalDate:
		ok = localDatePattern.MatchString(s)
	case LocalTime:
		ok = localTimePattern.MatchString(s) && validTimeOfDay(s)
	case OffsetTime:
		ok = offsetTimePattern.MatchString(s) && validTimeOfDay(s)
	case LocalDateTime:
		ok = localDateTimePattern.MatchString(s) && validTimeOfDay(s)
	case OffsetDateTime:
		ok = offsetDateTimePattern.MatchString(s) && validTimeOfDay(s)
	case ZonedDateTime:
		ok = zonedDateTimePattern.MatchString(s) && validTimeOfDay(s)
	case Instant:
		ok = instantPattern.MatchString(s) && validTimeOfDay(s)
	}
	if !ok {
		return nil, false
	}
	return Temporal{Sub: sub, Lexical: s}, true
}

// validTimeOfDay extracts and sanity-checks the HH:MM:SS component common
// to every time-bearing temporal shape, rejecting e.g. "25:61:61".
func validTimeOfDay(s string) bool {
	idx := strings.IndexAny(s, "T")
	timePart := s
	if idx >= 0 {
		timePart = s[idx+1:]
	}
	timePart = strings.TrimRight(timePart, "Z")
	if i := strings.IndexAny(timePart, "+-["); i > 0 {
		timePart = timePart[:i]
	}
	parts := strings.SplitN(timePart, ":", 3)
	if len(parts) != 3 {
		return idx < 0 && len(strings.Split(timePart, ":")) != 3 // date-only lexicals have no time part
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	secPart, _, _ := strings.Cut(parts[2], ".")
	sec, err3 := strconv.Atoi(secPart)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60 && sec >= 0 && sec < 61
}

// AmountKind discriminates TemporalAmount's two ISO 8601 shapes.
type AmountKind int

const (
	AmountPeriod AmountKind = iota
	AmountDuration
)

// TemporalAmount is an ISO 8601 Period (date-based) or Duration
// (time-based) literal.
type TemporalAmount struct {
	Sub     AmountKind
	Lexical string
}

func (t TemporalAmount) Kind() Kind                { return KindTemporalAmount }
func (t TemporalAmount) Encode(base string) string { return t.Lexical }
func (t TemporalAmount) Equal(other Value) bool {
	o, ok := other.(TemporalAmount)
	return ok && o.Sub == t.Sub && o.Lexical == t.Lexical
}

var (
	periodPattern   = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?$`)
	durationPattern = regexp.MustCompile(`^-?P(\d+D)?T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?$`)
)

// DecodeTemporalAmount dispatches to Period or Duration by lexical shape.
func DecodeTemporalAmount(base, s string) (Value, bool) {
	if s == "" || s == "P" || s == "-P" {
		return nil, false
	}
	if strings.Contains(s, "T") {
		if durationPattern.MatchString(s) {
			return TemporalAmount{Sub: AmountDuration, Lexical: s}, true
		}
		return nil, false
	}
	if periodPattern.MatchString(s) && s != "P" {
		return TemporalAmount{Sub: AmountPeriod, Lexical: s}, true
	}
	return nil, false
}

// asTime parses a Temporal's lexical into a time.Time for natural-order
// comparison, used by range constraints. ZonedDateTime's trailing
// "[Zone/Id]" annotation is stripped since Go's time.Parse has no matching
// layout verb for it.
func asTime(t Temporal) (time.Time, error) {
	lex := t.Lexical
	if t.Sub == ZonedDateTime {
		if i := strings.IndexByte(lex, '['); i >= 0 {
			lex = lex[:i]
		}
	}
	switch t.Sub {
	case Year:
		y, err := strconv.Atoi(lex)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC), nil
	case YearMonth:
		return time.Parse("2006-01", lex)
	case LocalDate:
		return time.Parse("2006-01-02", lex)
	case LocalTime:
		return time.Parse("15:04:05", trimFraction(lex))
	case OffsetTime:
		return time.Parse("15:04:05Z07:00", normalizeOffset(lex))
	case LocalDateTime:
		return time.Parse("2006-01-02T15:04:05", trimFraction(lex))
	case OffsetDateTime, ZonedDateTime, Instant:
		return time.Parse(time.RFC3339, normalizeOffset(lex))
	default:
		return time.Time{}, fmt.Errorf("value: unsupported temporal shape %v", t.Sub)
	}
}

func trimFraction(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

func normalizeOffset(s string) string {
	s = trimFraction(s)
	if !strings.HasSuffix(s, "Z") && !strings.Contains(s[len(s)-6:], ":") {
		return s
	}
	return s
}
