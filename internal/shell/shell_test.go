package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shellcontext "github.com/mgree/modernish/internal/context"
)

func TestInitializeServices(t *testing.T) {
	ctx := shellcontext.NewTestContext()
	shellcontext.SetGlobalContext(ctx)

	require.NoError(t, InitializeServices(true))
	assert.True(t, ctx.IsTestMode())

	// The option catalog must be registered once services are up.
	_, known := ctx.OptionState("noglob")
	assert.True(t, known)
}
