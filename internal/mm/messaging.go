//    SpeechTopics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	BLUE2                = "\033[38;5;68m"  // SteelBlue3
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	YELLOW2              = "\033[38;5;143m" // DarkKhaki
	GREY3                = "\033[38;5;242m" // Grey42
	WHITE                = "\033[38;5;255m" // Grey93
	BLINK                = "\033[30;0;5m"
)

// MessageMaker - leveled terminal output; zap does the writing, the MessageMaker decides what is worth writing
type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	out  io.Writer
	zl   *zap.Logger
	mtx  sync.RWMutex
}

// NewMessageMaker - a MessageMaker writing to stdout at level 0
func NewMessageMaker(longname, shortname, version string) *MessageMaker {
	m := &MessageMaker{
		Lnc: time.Now(),
		LNm: longname,
		SNm: shortname,
		Ver: version,
		Win: runtime.GOOS == "windows",
		out: os.Stdout,
	}
	m.build()
	return m
}

// build - (re)assemble the zap logger after output or color settings change
func (m *MessageMaker) build() {
	ec := zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		NameKey:        "N",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if !m.colorok() {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(m.out), zap.DebugLevel)
	m.zl = zap.New(core).Named(m.SNm)
}

func (m *MessageMaker) colorok() bool {
	return !m.Win && !m.BW
}

// SetOutput - send everything to w instead of stdout
func (m *MessageMaker) SetOutput(w io.Writer) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.out = w
	m.build()
}

// Configure - adopt the log level and color preference of the loaded configuration
func (m *MessageMaker) Configure(loglevel int, bw bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.LLvl = loglevel
	m.BW = bw
	m.build()
}

// Emit - send a message to the terminal, perhaps adding color to it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "INFO	STP	cleaned 693 documents (12 not in English)"
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if m.LLvl < threshold {
		return
	}

	if m.colorok() {
		var color string
		switch threshold {
		case MSGMAND:
			color = GREEN
		case MSGCRIT:
			color = RED1
		case MSGWARN:
			color = YELLOW2
		case MSGNOTE:
			color = YELLOW1
		case MSGFYI:
			color = CYAN2
		case MSGPEEK:
			color = BLUE2
		case MSGTMI:
			color = GREY3
		default:
			color = WHITE
		}
		message = color + message + RESET
	}

	switch threshold {
	case MSGCRIT:
		m.zl.Error(message)
	case MSGWARN:
		m.zl.Warn(message)
	case MSGPEEK, MSGTMI:
		m.zl.Debug(message)
	default:
		m.zl.Info(message)
	}
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string)  { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string)  { m.Emit(s, MSGTMI) }

// EC - report an error if there is one; the caller decides whether to carry on
func (m *MessageMaker) EC(err error) {
	if err != nil {
		m.Emit(err.Error(), MSGCRIT)
	}
}

// Timer - report time elapsed since start and since previous
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	d := fmt.Sprintf("[%s: %.3fs][Δ: %.3fs] ", letter, time.Since(start).Seconds(), time.Since(previous).Seconds())
	m.Emit(d+o, TIMETRACKERMSGTHRESH)
}

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if m.colorok() {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD  = "\033[1m"
		ITAL  = "\033[3m"
		UNDER = "\033[4m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S0", "")

	if m.colorok() {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// Sync - flush whatever zap is holding
func (m *MessageMaker) Sync() {
	_ = m.zl.Sync()
}
