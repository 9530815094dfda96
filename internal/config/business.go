package config

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BusinessProfile is the issuing business identity stamped on every invoice.
// It is injected configuration, not a database row.
type BusinessProfile struct {
	BusinessName    string `mapstructure:"businessName"`
	Address         string `mapstructure:"address"`
	Email           string `mapstructure:"email"`
	VATID           string `mapstructure:"vatId"`
	BankDetails     string `mapstructure:"bankDetails"`
	DefaultCurrency string `mapstructure:"defaultCurrency"`
}

func DefaultBusinessProfile() BusinessProfile {
	return BusinessProfile{
		BusinessName:    "Involine",
		DefaultCurrency: "EUR",
	}
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// BusinessProfileHolder serves the current profile and hot-reloads it when the
// underlying config file changes.
type BusinessProfileHolder struct {
	current atomic.Value // holds BusinessProfile
}

func NewBusinessProfileHolder() (*BusinessProfileHolder, error) {
	v := viper.New()

	v.SetConfigName("business")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/involine")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBusinessProfile()
		v.SetDefault("business.businessName", defaults.BusinessName)
		v.SetDefault("business.defaultCurrency", defaults.DefaultCurrency)
	}

	var profile BusinessProfile
	if err := v.UnmarshalKey("business", &profile); err != nil {
		return nil, err
	}
	if err := validateBusinessProfile(profile); err != nil {
		return nil, err
	}

	holder := &BusinessProfileHolder{}
	holder.current.Store(profile)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BusinessProfile
		if err := v.UnmarshalKey("business", &updated); err != nil {
			log.Printf("[business-config] reload failed: %v", err)
			return
		}
		if err := validateBusinessProfile(updated); err != nil {
			log.Printf("[business-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[business-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticBusinessProfileHolder wraps a fixed profile with no file watching.
func NewStaticBusinessProfileHolder(profile BusinessProfile) *BusinessProfileHolder {
	holder := &BusinessProfileHolder{}
	holder.current.Store(profile)
	return holder
}

func (h *BusinessProfileHolder) Get() BusinessProfile {
	return h.current.Load().(BusinessProfile)
}

func validateBusinessProfile(profile BusinessProfile) error {
	if strings.TrimSpace(profile.BusinessName) == "" {
		return errors.New("business.businessName cannot be empty")
	}
	if !currencyRe.MatchString(profile.DefaultCurrency) {
		return errors.New("business.defaultCurrency must be a 3-letter uppercase code")
	}
	return nil
}
