package sources

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/scrapekit/scrapekit/pkg/settings"
)

// SettingPrefix is prepended to a provider name to form its enablement key
// in the settings store.
const SettingPrefix = "provider."

// EnablementPolicy decides what a failed settings lookup means.
type EnablementPolicy int

const (
	// FailOpen treats an unreadable flag as enabled. This is the default:
	// configuration breakage must never silently hide providers.
	FailOpen EnablementPolicy = iota
	// FailClosed treats an unreadable flag as disabled.
	FailClosed
)

// Oracle answers "is this provider enabled?" by reading the external
// settings store. It has no side effects and never returns an error; lookup
// failures resolve per the configured policy.
type Oracle struct {
	store  settings.Store
	policy EnablementPolicy
	log    *logrus.Logger
}

// NewOracle creates an enablement oracle over the given store.
func NewOracle(store settings.Store, policy EnablementPolicy, log *logrus.Logger) *Oracle {
	if log == nil {
		log = logrus.New()
	}
	return &Oracle{
		store:  store,
		policy: policy,
		log:    log,
	}
}

// IsEnabled reports whether the provider's flag reads exactly "true". A
// present, correctly-read other value is a genuine "disabled" signal; only
// the lookup failing resolves through the policy.
func (o *Oracle) IsEnabled(ctx context.Context, name string) bool {
	value, err := o.store.Get(ctx, SettingPrefix+name)
	if errors.Is(err, settings.ErrKeyNotFound) {
		// No flag configured at all; resolve per policy without noise.
		o.log.WithField("provider", name).Debug("No enablement flag set")
		return o.policy == FailOpen
	}
	if err != nil {
		open := o.policy == FailOpen
		o.log.WithError(err).WithFields(logrus.Fields{
			"provider": name,
			"failopen": open,
		}).Warn("Enablement lookup failed")
		return open
	}
	return value == "true"
}
