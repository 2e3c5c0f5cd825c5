package app

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

var Version = "0.4.0"

var ConfigPath string
var Info = map[string]any{
	"version": Version,
}

// Args are positional arguments, the input files
var Args []string

func Init() {
	var confs flagConfig
	var version bool

	flag.Var(&confs, "config", "audiolens config (path to file, raw YAML or key.sub=value), support multiple")
	flag.BoolVar(&version, "version", false, "Print the version of the application and exit")
	flag.Parse()

	if version {
		fmt.Printf("audiolens version %s%s %s/%s\n", Version, revision(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	Args = flag.Args()

	errs := initConfig(confs)
	initLogger()

	for _, err := range errs {
		Logger.Warn().Err(err).Msg("[app] config")
	}

	platform := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	Logger.Info().Str("version", Version).Str("platform", platform).Msg("audiolens")
	Logger.Debug().Str("version", runtime.Version()).Msg("build")

	if ConfigPath != "" {
		Logger.Info().Str("path", ConfigPath).Msg("config")
	}
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var rev string
	var vcsTime time.Time
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, setting.Value)
		}
	}

	if rev == "" {
		return ""
	}
	return fmt.Sprintf(" (%s) %s", rev, vcsTime.Local().Format(time.DateOnly))
}
