package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutURLReturnsNoop(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)

	assert.NoError(t, p.Publish(context.Background(), SubjectApplicationSubmitted, ApplicationSubmitted{ApplicationID: 1}))
	p.Close()
}

func TestNew_UnreachableServer(t *testing.T) {
	_, err := New("nats://127.0.0.1:1")
	assert.Error(t, err)
}
