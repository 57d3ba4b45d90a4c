// Package subscription owns the per-release channel catalogs and
// drives the host's subscription channels through the external
// subscription tool.
package subscription

import (
	"fmt"
	"slices"

	"github.com/virtstack/ffu/internal/messages"
)

// Channel catalogs for each supported release. The lists are the
// product's published channel sets; order within a catalog carries no
// meaning, steps are derived by set difference.
var (
	rhv40Repos = []string{
		"rhel-7-server-rpms",
		"rhel-7-server-supplementary-rpms",
		"rhel-7-server-rhv-4.0-rpms",
		"jb-eap-7-for-rhel-7-server-rpms",
	}

	rhv41Repos = []string{
		"rhel-7-server-rpms",
		"rhel-7-server-supplementary-rpms",
		"rhel-7-server-rhv-4.1-rpms",
		"rhel-7-server-rhv-4-tools-rpms",
		"jb-eap-7-for-rhel-7-server-rpms",
	}

	rhv42Repos = []string{
		"rhel-7-server-rpms",
		"rhel-7-server-supplementary-rpms",
		"rhel-7-server-rhv-4.2-manager-rpms",
		"rhel-7-server-rhv-4-manager-tools-rpms",
		"rhel-7-server-ansible-2-rpms",
		"jb-eap-7-for-rhel-7-server-rpms",
	}

	rhv43Repos = []string{
		"rhel-7-server-rpms",
		"rhel-7-server-supplementary-rpms",
		"rhel-7-server-rhv-4.3-manager-rpms",
		"rhel-7-server-rhv-4-manager-tools-rpms",
		"rhel-7-server-ansible-2.9-rpms",
		"jb-eap-7.2-for-rhel-7-server-rpms",
	}
)

// ReleaseStep describes one supported version-to-version transition:
// the channels the host gains and loses when moving from Version to
// Next. Enable and Disable are disjoint by construction.
type ReleaseStep struct {
	Version string
	Next    string
	Enable  []string
	Disable []string
}

// Steps returns the ordered upgrade path. The driver walks it
// front-to-back; the order is semantically significant.
func Steps() []ReleaseStep {
	return []ReleaseStep{
		newStep("4.0", "4.1", rhv40Repos, rhv41Repos),
		newStep("4.1", "4.2", rhv41Repos, rhv42Repos),
		newStep("4.2", "4.3", rhv42Repos, rhv43Repos),
	}
}

func newStep(version, next string, current, target []string) ReleaseStep {
	return ReleaseStep{
		Version: version,
		Next:    next,
		Enable:  difference(target, current),
		Disable: difference(current, target),
	}
}

// RequiredChannels returns the channel set a host must have enabled
// before upgrading away from version.
func RequiredChannels(version string) ([]string, error) {
	switch version {
	case "4.0":
		return slices.Clone(rhv40Repos), nil
	case "4.1":
		return slices.Clone(rhv41Repos), nil
	case "4.2":
		return slices.Clone(rhv42Repos), nil
	}
	return nil, fmt.Errorf(messages.NoChannelCatalogFmt, version)
}

// difference returns the members of a not present in b, preserving a's
// order.
func difference(a, b []string) []string {
	out := []string{}
	for _, id := range a {
		if !slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}
