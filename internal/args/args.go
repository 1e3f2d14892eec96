// Package args assembles the command-line argument list a launcher passes
// to the engine. It only builds the slice; launching the process is the
// caller's business, not ours.
package args

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// validLogLevels are the root log levels the engine accepts.
var validLogLevels = map[string]bool{
	"FATAL_ERROR": true,
	"ERROR":       true,
	"WARN":        true,
	"INFO":        true,
	"DEBUG":       true,
}

// defaultTimestampLayout is ISO-8601 date, the engine community convention
// for results filenames.
const defaultTimestampLayout = "2006-01-02"

// Builder holds everything needed to produce one engine invocation's argv.
type Builder struct {
	JMeterHome string
	TestFile   string
	ResultsDir string
	LogsDir    string

	// ResultsCSV switches the results file extension from .jtl to .csv.
	ResultsCSV bool

	Timestamp       bool
	AppendTimestamp bool
	TimestampLayout string

	RootLogLevel    string
	CustomPropsFile string

	ProxyHost     string
	ProxyPort     int
	ProxyUsername string
	ProxyPassword string

	// GlobalProps are passed as -G definitions (the engine's notion of
	// global properties, i.e. properties sent to remote engines too).
	GlobalProps map[string]string

	// Clock supplies the timestamp; tests pin it. Nil means time.Now.
	Clock func() time.Time
}

// ResultsFile computes the results file path for the configured test plan,
// with the optional timestamp prefixed or appended to the base name.
func (b *Builder) ResultsFile() string {
	base := strings.TrimSuffix(filepath.Base(b.TestFile), filepath.Ext(b.TestFile))
	if b.Timestamp {
		layout := b.TimestampLayout
		if layout == "" {
			layout = defaultTimestampLayout
		}
		now := time.Now
		if b.Clock != nil {
			now = b.Clock
		}
		stamp := now().Format(layout)
		if b.AppendTimestamp {
			base = base + "-" + stamp
		} else {
			base = stamp + "-" + base
		}
	}
	ext := ".jtl"
	if b.ResultsCSV {
		ext = ".csv"
	}
	return filepath.Join(b.ResultsDir, base+ext)
}

// Build returns the argument list in a fixed order, so identical inputs
// always produce an identical command line.
func (b *Builder) Build() []string {
	argv := []string{
		"-n",
		"-t", b.TestFile,
		"-l", b.ResultsFile(),
		"-d", b.JMeterHome,
		"-j", filepath.Join(b.LogsDir, "jmeter.log"),
	}
	if b.CustomPropsFile != "" {
		argv = append(argv, "-q", b.CustomPropsFile)
	}
	if level := strings.ToUpper(b.RootLogLevel); level != "" && validLogLevels[level] {
		argv = append(argv, "-L", level)
	}
	if b.ProxyHost != "" {
		argv = append(argv, "-H", b.ProxyHost, "-P", fmt.Sprintf("%d", b.ProxyPort))
		if b.ProxyUsername != "" {
			argv = append(argv, "-u", b.ProxyUsername)
		}
		if b.ProxyPassword != "" {
			argv = append(argv, "-a", b.ProxyPassword)
		}
	}
	if len(b.GlobalProps) > 0 {
		keys := make([]string, 0, len(b.GlobalProps))
		for k := range b.GlobalProps {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			argv = append(argv, fmt.Sprintf("-G%s=%s", k, b.GlobalProps[k]))
		}
	}
	return argv
}
