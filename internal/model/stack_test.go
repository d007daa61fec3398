package model_test

import (
	"testing"

	"github.com/aic/aic/internal/model"
	"github.com/stretchr/testify/assert"
)

type comp struct {
	name    string
	running bool
}

func (c *comp) Name() string { return c.name }
func (c *comp) Start()       { c.running = true }
func (c *comp) Stop()        { c.running = false }

type stackRecorder struct {
	tops []string
}

func (s *stackRecorder) StackPushed(model.Component)      {}
func (s *stackRecorder) StackPopped(_, _ model.Component) {}
func (s *stackRecorder) StackTop(c model.Component)       { s.tops = append(s.tops, c.Name()) }

func TestStack(t *testing.T) {
	s := model.NewStack()
	var r stackRecorder
	s.AddListener(&r)

	clusters, hosts := &comp{name: "clusters"}, &comp{name: "hosts"}
	s.Push(clusters)
	s.Push(hosts)
	assert.False(t, clusters.running)
	assert.True(t, hosts.running)
	assert.Equal(t, []string{"clusters", "hosts"}, s.Flatten())

	c, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, hosts, c)
	assert.True(t, clusters.running)
	assert.False(t, hosts.running)
	assert.True(t, s.IsLast())

	_, ok = s.Pop()
	assert.False(t, ok)
	assert.Equal(t, []string{"clusters", "hosts", "clusters"}, r.tops)

	storage := &comp{name: "storage"}
	s.Reset(storage)
	assert.False(t, clusters.running)
	assert.Equal(t, []string{"storage"}, s.Flatten())
}
