package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rooted/backend/internal/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [message]", askCmd.Use)
}

func TestAskCmd_RequiresMessage(t *testing.T) {
	_, err := execute("ask")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestAskCmd_NotConfigured(t *testing.T) {
	orig := assistantService
	assistantService = nil
	defer func() { assistantService = orig }()

	_, err := execute("ask", "carrots")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAskCmd_PrintsReplyText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("ask", "organic", "tomatoes")

	require.NoError(t, err)
	assert.Contains(t, out, "Great! I found 1 farm with your requested items:")
	assert.Contains(t, out, "Resta Gård")
	assert.Contains(t, out, "Tomatoes: 38 SEK/kg (Organic)")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("ask", "--json", "I need pears")
	require.NoError(t, err)

	var reply domain.AssistantReply
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &reply))
	assert.Equal(t, []string{"lenas-heritage", "harvest-market"}, reply.SuggestedFarms)
	assert.Equal(t, "pears", reply.SearchQuery)
}
