package main

import (
	"flag"
	"io"
	"log"
	"os"

	"golang.org/x/text/language"

	"github.com/algc-lang/algc/internal/config"
	"github.com/algc-lang/algc/internal/messages"
	"github.com/algc-lang/algc/internal/types"
)

// commonFlags are the options shared by every command. They override the
// values of algc.yml when given explicitly.
type commonFlags struct {
	fs         *flag.FlagSet
	configPath *string
	strict     *bool
	lang       *string
	verbose    *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		fs:         fs,
		configPath: fs.String("config", "", "path to "+config.FileName+" (default: "+config.FileName+" in the working directory)"),
		strict:     fs.Bool("strict", false, "reject variables that are not bound by the clause pattern"),
		lang:       fs.String("lang", "", "message language: en or ru"),
		verbose:    fs.Bool("v", false, "trace checker phases on stderr"),
	}
}

// settings is the effective configuration of one command run.
type settings struct {
	cfg       *config.Config
	tag       language.Tag
	localizer *messages.Localizer
	logger    *log.Logger
}

// checkerOptions returns the options every validation of the run uses.
func (s *settings) checkerOptions() []types.Option {
	return []types.Option{
		types.WithStrictVariables(s.cfg.StrictVariables),
		types.WithLogger(s.logger),
	}
}

// resolve loads the configuration file and applies the flags that were set.
func (c *commonFlags) resolve(stderr io.Writer) (*settings, error) {
	var (
		cfg *config.Config
		err error
	)
	if *c.configPath != "" {
		cfg, err = config.Load(*c.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.LoadDir(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cfg.StrictVariables = *c.strict
		case "lang":
			cfg.Language = *c.lang
		}
	})

	tag, err := messages.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if *c.verbose {
		logger = log.New(stderr, "algc: ", 0)
	}
	if cfg.Path != "" {
		logger.Printf("config: %s", cfg.Path)
	}

	return &settings{
		cfg:       cfg,
		tag:       tag,
		localizer: messages.New(tag),
		logger:    logger,
	}, nil
}
