package cli

import (
	"fmt"
	"time"

	"github.com/arnavsurve/stepshot/pkg/browser"
	"github.com/arnavsurve/stepshot/pkg/log"
	"github.com/arnavsurve/stepshot/pkg/log/sinks"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/rs/zerolog"
)

// Globals are flags shared by every command.
type Globals struct {
	LogFile string `help:"Also write JSON logs to this file." env:"STEPSHOT_LOG_FILE"`
	Debug   bool   `help:"Log at debug level." env:"STEPSHOT_DEBUG"`
}

// CLI is the root command.
type CLI struct {
	Globals

	Serve ServeCmd `cmd:"" help:"Serve the run API and the captured screenshots."`
	Run   RunCmd   `cmd:"" help:"Run a suite or ad-hoc use cases once and print the report."`
	Lint  LintCmd  `cmd:"" help:"Validate a suite without opening a browser."`
}

// BrowserFlags configure the shared browser and where screenshots go.
type BrowserFlags struct {
	PublicDir     string        `help:"Directory screenshots are written to and served from." default:"public" env:"STEPSHOT_PUBLIC_DIR"`
	Headless      bool          `help:"Run Chromium without a window." default:"true" negatable:"" env:"STEPSHOT_HEADLESS"`
	NavTimeout    time.Duration `help:"Navigation timeout." default:"30s" env:"STEPSHOT_NAV_TIMEOUT"`
	InstallDriver bool          `help:"Download the playwright driver and Chromium before the first launch." env:"STEPSHOT_INSTALL_DRIVER"`
}

func (b BrowserFlags) options() browser.Options {
	opts := browser.DefaultOptions()
	opts.Headless = b.Headless
	opts.NavigationTimeout = b.NavTimeout
	opts.InstallDriver = b.InstallDriver
	return opts
}

// setupLogging routes all log lines to the console and, when logFile is set,
// to a JSON lines file. Close the router to flush the sinks.
func setupLogging(g *Globals, logFile string) (*log.Router, types.Logger, error) {
	logRouter := log.NewRouter(sinks.NewConsoleSink())

	if logFile != "" {
		fileSink, err := sinks.NewFileSink(logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("creating file log sink: %w", err)
		}
		logRouter.AddSink(fileSink)
	}

	level := zerolog.InfoLevel
	if g.Debug {
		level = zerolog.DebugLevel
	}
	base := zerolog.New(logRouter).Level(level).With().Timestamp().Logger()
	return logRouter, log.NewZerologAdapter(base), nil
}

func closeLogging(logger types.Logger, logRouter *log.Router) {
	logger.Debug().Msg("Shutting down logger...")
	if err := logRouter.Close(); err != nil {
		fmt.Printf("Error during log shutdown: %v\n", err)
	}
}
