package agent

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/network"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

func owner(rel string) api.FieldView {
	return api.FieldView{Name: "owner", Known: true, Value: map[string]string{"player": "P2", "relation": rel}}
}

func outpost(id string, fields ...api.FieldView) api.ReportView {
	return api.ReportView{ID: id, Kind: "OUTPOST", Coverage: "comprehensive", Fields: fields}
}

func TestChooseTarget(t *testing.T) {
	tests := []struct {
		name    string
		reports []api.ReportView
		want    string
		wantOK  bool
	}{
		{
			name:    "nothing known",
			reports: nil,
		},
		{
			name: "unknown owner is not a target",
			reports: []api.ReportView{
				outpost("1", api.FieldView{Name: "owner"}, api.FieldView{Name: "defense", Known: true, Value: 1}),
			},
		},
		{
			name: "own and neutral are skipped",
			reports: []api.ReportView{
				outpost("1", owner("SELF")),
				outpost("2", owner("NEUTRAL")),
			},
		},
		{
			name: "weakest known defense wins",
			reports: []api.ReportView{
				outpost("1", owner("ENEMY"), api.FieldView{Name: "defense", Known: true, Value: 50}),
				outpost("2", owner("ENEMY"), api.FieldView{Name: "defense", Known: true, Value: 20}),
			},
			want:   "2",
			wantOK: true,
		},
		{
			name: "known strength beats unknown",
			reports: []api.ReportView{
				outpost("1", owner("ENEMY"), api.FieldView{Name: "defense"}),
				outpost("2", owner("ENEMY"), api.FieldView{Name: "defense", Known: true, Value: 90}),
			},
			want:   "2",
			wantOK: true,
		},
		{
			name: "tie broken by id",
			reports: []api.ReportView{
				outpost("7", owner("ENEMY")),
				outpost("3", owner("ENEMY")),
			},
			want:   "3",
			wantOK: true,
		},
		{
			name: "fleet members are candidates",
			reports: []api.ReportView{
				{
					ID: "10", Kind: "FLEET", Fields: []api.FieldView{owner("ENEMY")},
					Members: []api.ReportView{
						{ID: "11", Kind: "SHIP", Fields: []api.FieldView{owner("ENEMY"), {Name: "hit_points", Known: true, Value: 5}}},
					},
				},
			},
			want:   "11",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChooseTarget(tt.reports)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.want {
				t.Errorf("target = %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestChooseTarget_DecodedJSON(t *testing.T) {
	src := []api.ReportView{
		outpost("1", owner("ENEMY"), api.FieldView{Name: "defense", Known: true, Value: 40}),
		outpost("2", owner("ENEMY"), api.FieldView{Name: "defense", Known: true, Value: 10}),
	}
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []api.ReportView
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	got, ok := ChooseTarget(decoded)
	if !ok || got.ID != "2" || got.Strength != 10 {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestBot_Run(t *testing.T) {
	hub := network.NewBroadcaster()
	player := types.PlayerID(1)
	bot := NewBot(player, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bot.Run(ctx)
		close(done)
	}()

	hub.SendTo(player, api.ServerResponse{
		Type:     "UPDATE",
		Tick:     3,
		Entities: []api.ReportView{outpost("5", owner("ENEMY"))},
	})

	// Ждем, пока бот разберёт снимок
	deadline := time.After(time.Second)
	for len(bot.Inbox) > 0 {
		select {
		case <-deadline:
			t.Fatal("bot did not drain inbox")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	<-done

	target, ok := bot.Target()
	if !ok || target.ID != "5" {
		t.Errorf("target = %+v, %v", target, ok)
	}
	if hub.HasSubscriber(player) {
		t.Error("bot must unregister on shutdown")
	}
}
