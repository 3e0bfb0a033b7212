package integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonsvc/horizon/internal/testutil"
)

// TestLookupThroughInterfaceHierarchy validates that modules implementing a
// child interface are returned for lookups against its declared ancestors,
// priority-descending.
func TestLookupThroughInterfaceHierarchy(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"push/manifest.hcl": `
			module "push.fcm" {
			  category   = "push"
			  group      = "vendor"
			  priority   = 10
			  implements = ["push.Pusher"]
			}

			module "push.inhouse" {
			  category   = "push"
			  group      = "inhouse"
			  priority   = 1
			  implements = ["push.Pusher"]
			}

			interface "push.Pusher" {
			  extends = ["core.Service"]
			}
		`,
		"metrics/manifest.hcl": `
			module "metrics.statsd" {
			  category   = "metrics"
			  group      = "vendor"
			  priority   = 5
			  implements = ["metrics.Sink"]
			}

			interface "metrics.Sink" {
			  extends = ["core.Service"]
			}
		`,
	}

	type named struct{ name string }
	factory := func(name string) func(context.Context) (any, error) {
		return func(context.Context) (any, error) { return &named{name: name}, nil }
	}

	result := testutil.RunInit(t, files,
		&testutil.StaticModule{Identity: "push.fcm", Factory: factory("fcm")},
		&testutil.StaticModule{Identity: "push.inhouse", Factory: factory("inhouse")},
		&testutil.StaticModule{Identity: "metrics.statsd", Factory: factory("statsd")},
	)
	require.NoError(t, result.Err)

	reg := result.App.Registry()
	ctx := context.Background()

	// Every module reaches the shared ancestor, ordered by priority.
	instances, err := reg.All(ctx, "core.Service")
	require.NoError(t, err)
	require.Len(t, instances, 3)
	assert.Equal(t, "fcm", instances[0].(*named).name)
	assert.Equal(t, "statsd", instances[1].(*named).name)
	assert.Equal(t, "inhouse", instances[2].(*named).name)

	// Category and group filters apply before compatibility.
	instances, err = reg.ByCategory(ctx, "core.Service", "push")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	instances, err = reg.ByGroup(ctx, "push.Pusher", "inhouse")
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "inhouse", instances[0].(*named).name)
}
