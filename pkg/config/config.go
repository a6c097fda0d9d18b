package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"

	"github.com/autobrr/rxrule/pkg/logger"
	"github.com/autobrr/rxrule/pkg/stringutils"
)

type Configuration struct {
	Rules         map[string]RuleConfiguration
	Notifications NotificationsConfig `yaml:"notifications" koanf:"notifications"`
}

/* Vars */

var (
	cfgPath = ""

	Delimiter = "."
	Config    *Configuration
	K         = koanf.New(Delimiter)

	// Internal
	log = logger.GetLogger("cfg")
)

/* Public */

func Init(configFilePath string) error {
	// set package variables
	cfgPath = configFilePath

	// load config
	if err := K.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	// load environment variables
	if err := K.Load(env.Provider("RXRULE__", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "RXRULE__")), "__", ".", -1)
	}), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	// unmarshal config
	cfg, err := unmarshal(K)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	Config = cfg

	log.Debugf("Parsed %d rule(s): %s", len(Config.Rules), strings.Join(RuleNames(), ", "))

	return nil
}

func ShowUsing() {
	log.Infof("Using %s = %q", stringutils.LeftJust("CONFIG", " ", 10), cfgPath)
}

// RuleNames returns the configured rule names in sorted order.
func RuleNames() []string {
	if Config == nil {
		return nil
	}

	names := make([]string, 0, len(Config.Rules))
	for name := range Config.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/* Private */

func unmarshal(k *koanf.Koanf) (*Configuration, error) {
	cfg := new(Configuration)

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				ruleShorthandHook,
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			TagName:          "koanf",
			Metadata:         nil,
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}
