package handlers

import (
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

func TestWithPayload(t *testing.T) {
	var got api.RenamePayload
	h := WithPayload(func(_ Context, p api.RenamePayload) (Result, error) {
		got = p
		return Result{Msg: "ok"}, nil
	})

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"targetId":"5","name":"Outpost-8"}`, false},
		{"empty", ``, true},
		{"null", `null`, true},
		{"broken json", `{"targetId":`, true},
		{"fails validation", `{"targetId":"5","name":""}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h(Context{}, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if got.Name != "Outpost-8" {
		t.Errorf("handler got %+v", got)
	}

	if _, err := h(Context{}, nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("err = %v, want ErrEmptyPayload", err)
	}
}

func TestLogged_PassesThrough(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		result  Result
		err     error
		wantMsg string
	}{
		{"applied", Result{Msg: "done", MsgType: "ADMIN"}, nil, "done"},
		{"rejected", ErrorResult("nope"), nil, "nope"},
		{"failed", Result{}, boom, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Logged(ActionRename, func(Context, json.RawMessage) (Result, error) {
				return tt.result, tt.err
			})
			res, err := h(Context{}, nil)
			if !errors.Is(err, tt.err) || res.Msg != tt.wantMsg {
				t.Errorf("got (%+v, %v)", res, err)
			}
		})
	}
}
