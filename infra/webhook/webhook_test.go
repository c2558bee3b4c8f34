package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotswitch/spotswitch/core/strategy"
	"github.com/spotswitch/spotswitch/infra/logger"
)

type memSwitchLog struct {
	states []strategy.PowerState
	err    error
}

func (m *memSwitchLog) RecordSwitch(_ context.Context, state strategy.PowerState) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.states = append(m.states, state)
	return int64(len(m.states)), nil
}

func TestApplyHitsStateURL(t *testing.T) {
	var onCalls, offCalls atomic.Int64
	onSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		onCalls.Add(1)
	}))
	defer onSrv.Close()
	offSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offCalls.Add(1)
	}))
	defer offSrv.Close()

	log := &memSwitchLog{}
	act := &Actuator{OnURL: onSrv.URL, OffURL: offSrv.URL, Log: log, Logger: logger.NopLogger{}}

	require.NoError(t, act.Apply(context.Background(), strategy.On))
	require.NoError(t, act.Apply(context.Background(), strategy.Off))
	require.NoError(t, act.Apply(context.Background(), strategy.On))

	assert.Equal(t, int64(2), onCalls.Load())
	assert.Equal(t, int64(1), offCalls.Load())
	assert.Equal(t, []strategy.PowerState{strategy.On, strategy.Off, strategy.On}, log.states)
}

func TestApplyEmptyURLIsNoop(t *testing.T) {
	log := &memSwitchLog{}
	act := &Actuator{Log: log, Logger: logger.NopLogger{}}

	require.NoError(t, act.Apply(context.Background(), strategy.On))
	assert.Empty(t, log.states, "skipped actuations are not recorded")
}

func TestApplyBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "relay jammed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := &memSwitchLog{}
	act := &Actuator{OnURL: srv.URL, OffURL: srv.URL, Log: log, Logger: logger.NopLogger{}}

	err := act.Apply(context.Background(), strategy.On)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Empty(t, log.states, "failed actuations are not recorded")
}

func TestApplyLogFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	log := &memSwitchLog{err: assert.AnError}
	act := &Actuator{OnURL: srv.URL, OffURL: srv.URL, Log: log, Logger: logger.NopLogger{}}

	require.NoError(t, act.Apply(context.Background(), strategy.On))
}
