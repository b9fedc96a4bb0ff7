package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"bizpilot/provider/testutil"
)

type closingProvider struct {
	*testutil.MockProvider
	closed int
	err    error
}

func (p *closingProvider) Close() error {
	p.closed++
	return p.err
}

func TestCloseProvider(t *testing.T) {
	p := &closingProvider{MockProvider: testutil.NewMockProvider("m")}
	closeProvider(p)
	assert.Equal(t, 1, p.closed)

	failing := &closingProvider{MockProvider: testutil.NewMockProvider("m"), err: errors.New("already closed")}
	closeProvider(failing)
	assert.Equal(t, 1, failing.closed)

	// providers without a client connection are left alone
	closeProvider(testutil.NewMockProvider("m"))
}
