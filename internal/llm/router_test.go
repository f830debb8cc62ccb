package llm_test

import (
	"context"
	"testing"

	"github.com/amminlb/corporateai/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name       string
	configured bool
}

func (p *stubProvider) Name() string              { return p.name }
func (p *stubProvider) AvailableModels() []string { return []string{"stub-1"} }
func (p *stubProvider) DefaultModel() string      { return "stub-1" }
func (p *stubProvider) IsConfigured() bool        { return p.configured }
func (p *stubProvider) Complete(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	return &llm.Response{Text: "ok", Model: model}, nil
}

func TestRouter_GetProvider(t *testing.T) {
	router := llm.NewRouter("openai")
	router.RegisterProvider(&stubProvider{name: "openai", configured: true})
	router.RegisterProvider(&stubProvider{name: "gemini", configured: false})

	p, err := router.GetProvider("")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = router.GetProvider("gemini")
	assert.Error(t, err, "unconfigured provider should not be returned")

	_, err = router.GetProvider("missing")
	assert.Error(t, err)
}

func TestRouter_ListProviders(t *testing.T) {
	router := llm.NewRouter("openai")
	router.RegisterProvider(&stubProvider{name: "openai", configured: true})
	router.RegisterProvider(&stubProvider{name: "gemini", configured: false})

	assert.Equal(t, []string{"openai"}, router.ListProviders())
	assert.Equal(t, "openai", router.DefaultProvider())
}
