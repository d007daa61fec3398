package view

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/stretchr/testify/assert"
)

func TestFriendlyError(t *testing.T) {
	uu := map[string]struct {
		err error
		e   string
	}{
		"no-connection": {
			err: fmt.Errorf("list: %w", client.ErrNoConnection),
			e:   "No connection to the assisted installer",
		},
		"timeout": {
			err: fmt.Errorf("list: %w", context.DeadlineExceeded),
			e:   "Timed out listing hosts",
		},
		"forbidden": {
			err: &client.APIError{StatusCode: http.StatusForbidden},
			e:   "Access denied for hosts",
		},
		"not-found": {
			err: fmt.Errorf("list: %w", &client.APIError{StatusCode: http.StatusNotFound}),
			e:   "No hosts found",
		},
		"reason": {
			err: &client.APIError{StatusCode: http.StatusInternalServerError, Reason: "database is down"},
			e:   "database is down",
		},
		"refused": {
			err: errors.New("dial tcp 127.0.0.1:8090: connect: connection refused"),
			e:   "Unable to connect to the assisted installer",
		},
		"other": {
			err: errors.New("boom"),
			e:   "Unable to list hosts",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, friendlyError(u.err, "hosts"))
		})
	}
}

func TestObjectPath(t *testing.T) {
	h := newHost("h1", "node-a", dao.HostKnown)
	d := dao.NewDisk(h, dao.InventoryDisk{ID: "d1", Name: "sda"})
	c := dao.NewCluster(&client.Cluster{ID: "c9", Name: "prod"})

	assert.Equal(t, "c1/h1", objectPath(h))
	assert.Equal(t, "c1/h1/d1", objectPath(d))
	assert.Equal(t, "c9", objectPath(c))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "node-a", displayName(newHost("h1", "node-a", dao.HostKnown)))
	assert.Equal(t, "h2", displayName(newHost("h2", "", dao.HostKnown)))
}

func TestDiskDetails(t *testing.T) {
	h := newHost("h1", "node-a", dao.HostKnown)

	ok := dao.NewDisk(h, dao.InventoryDisk{ID: "d1", InstallationEligibility: dao.Eligibility{Eligible: true}})
	assert.Equal(t, []string{"Eligible for installation"}, diskDetails(ok))

	ko := dao.NewDisk(h, dao.InventoryDisk{ID: "d2", InstallationEligibility: dao.Eligibility{
		NotEligibleReasons: []string{"too small", "removable"},
	}})
	assert.Equal(t, []string{"Not eligible: too small; removable"}, diskDetails(ko))
}
