package mediator_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/application/mediator"
)

type pingCommand struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "pong:" + request.(*pingCommand).Value, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingCommand{}), pingHandler{}))

	err := m.Register(reflect.TypeOf(&pingCommand{}), pingHandler{})
	assert.Error(t, err)

	_, err = m.Send(context.Background(), struct{}{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, pingHandler{}))

	var calls []string
	record := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(record("outer"))
	m.RegisterMiddleware(record("inner"))

	_, err := m.Send(context.Background(), &pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestHandlerFunc_RegistersAsHandler(t *testing.T) {
	m := mediator.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return len(request.(*pingCommand).Value), nil
	})
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "abc"})

	require.NoError(t, err)
	assert.Equal(t, 3, resp)
}
