package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"fonoteca/internal/application"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		assetType string
		duration  int
		tags      []string
		errMsg    string
	}{
		{name: "valid", path: "/data/audio/rain.wav", assetType: "ambient"},
		{name: "valid with duration", path: "rain.wav", assetType: "ambient", duration: 120},
		{name: "empty path", path: " ", assetType: "ambient", errMsg: "file path is required"},
		{name: "empty type", path: "rain.wav", errMsg: "type is required"},
		{name: "unknown type", path: "rain.wav", assetType: "voice", errMsg: "unknown asset type"},
		{name: "negative duration", path: "rain.wav", assetType: "ambient", duration: -1, errMsg: "duration must be positive"},
		{name: "duration rule", path: "punch.wav", assetType: "action", duration: 30, errMsg: "1-10 seconds"},
		{name: "tag too long", path: "rain.wav", assetType: "ambient", tags: []string{strings.Repeat("x", 65)}, errMsg: "tag length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCreateCommand(nil, nil, tt.path, tt.assetType)
			cmd.Duration = tt.duration
			cmd.Tags = tt.tags
			err := cmd.Validate()

			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestCreateCommand_Execute(t *testing.T) {
	api := newFakeAPI(sample(1, domain.AssetTypeAmbient, 300))
	engine := catalog.New(api, api)
	ctx := context.Background()
	if err := engine.Load(ctx); err != nil {
		t.Fatal(err)
	}

	cmd := NewCreateCommand(api, engine, "/uploads/Door_Slam_02.wav", "action")
	cmd.Tags = []string{"door", " door ", "slam"}
	cmd.Duration = 2

	res, err := cmd.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Asset.Description != "door slam" {
		t.Errorf("description = %q, want derived from file name", res.Asset.Description)
	}
	if !slices.Equal(res.Asset.Tags, []string{"door", "slam"}) {
		t.Errorf("tags = %v", res.Asset.Tags)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}

	// the engine reloaded and sees the new asset
	if got := idsOf(engine.FullView()); !slices.Equal(got, []int64{1, res.Asset.ID}) {
		t.Errorf("engine view after create = %v", got)
	}
}

func TestCreateCommand_BackendFailure(t *testing.T) {
	api := newFakeAPI()
	api.writeErr = &application.TransportError{Op: "create", StatusCode: 422, Detail: "bad path"}
	obs := &recordingObserver{}

	_, err := NewCreateCommand(api, obs, "rain.wav", "ambient").Execute(context.Background())
	if !errors.Is(err, application.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
	if obs.calls != 0 {
		t.Error("observer must not be told about a failed mutation")
	}
}

func TestMutation_ReloadFailureIsAWarning(t *testing.T) {
	api := newFakeAPI(sample(1, domain.AssetTypeAmbient, 300))
	obs := &recordingObserver{err: errUnreachable}

	res, err := NewDeleteCommand(api, obs, 1).Execute(context.Background())
	if err != nil {
		t.Fatalf("delete itself succeeded, got %v", err)
	}
	if obs.calls != 1 || !strings.Contains(res.Warning, "connection refused") {
		t.Errorf("calls = %d, warning = %q", obs.calls, res.Warning)
	}
}

func strPtr(s string) *string { return &s }

func TestUpdateCommand_Execute(t *testing.T) {
	tests := []struct {
		name     string
		typ      *string
		desc     *string
		tags     *[]string
		want     domain.AssetUpdate
		errField string
	}{
		{
			name: "description only keeps the rest",
			desc: strPtr("slow tension"),
			want: domain.AssetUpdate{Type: domain.AssetTypeMood, Description: "slow tension", Tags: []string{"dark"}},
		},
		{
			name: "clear tags",
			tags: &[]string{},
			want: domain.AssetUpdate{Type: domain.AssetTypeMood, Description: "asset 1", Tags: []string{}},
		},
		{
			name: "type change within duration rules",
			typ:  strPtr("ambient"),
			want: domain.AssetUpdate{Type: domain.AssetTypeAmbient, Description: "asset 1", Tags: []string{"dark"}},
		},
		{
			name:     "type change breaking duration rules",
			typ:      strPtr("action"),
			errField: "duration",
		},
		{
			name:     "blank description",
			desc:     strPtr(" "),
			errField: "description",
		},
		{
			name:     "nothing set",
			errField: "update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(sample(1, domain.AssetTypeMood, 90, "dark"))
			obs := &recordingObserver{}

			cmd := NewUpdateCommand(api, obs, 1)
			cmd.Type, cmd.Description, cmd.Tags = tt.typ, tt.desc, tt.tags

			res, err := cmd.Execute(context.Background())
			if tt.errField != "" {
				var valErr *application.ValidationError
				if !errors.As(err, &valErr) || valErr.Field != tt.errField {
					t.Errorf("expected %s ValidationError, got %v", tt.errField, err)
				}
				if len(api.updates) != 0 {
					t.Error("invalid update reached the backend")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			got := api.updates[0]
			if got.Type != tt.want.Type || got.Description != tt.want.Description || !slices.Equal(got.Tags, tt.want.Tags) {
				t.Errorf("sent update %+v, want %+v", got, tt.want)
			}
			if res.Asset.ID != 1 || obs.calls != 1 {
				t.Errorf("result %+v, observer calls %d", res.Asset, obs.calls)
			}
		})
	}
}

func TestUpdateCommand_NotFound(t *testing.T) {
	api := newFakeAPI()
	cmd := NewUpdateCommand(api, nil, 7)
	cmd.Description = strPtr("x")

	if _, err := cmd.Execute(context.Background()); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCommand(t *testing.T) {
	api := newFakeAPI(sample(1, domain.AssetTypeAmbient, 300), sample(2, domain.AssetTypeAmbient, 300))
	engine := catalog.New(api, api)
	ctx := context.Background()
	if err := engine.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if err := NewDeleteCommand(api, engine, 0).Validate(); err == nil {
		t.Error("expected invalid ID error")
	}

	res, err := NewDeleteCommand(api, engine, 2).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.DeletedID != 2 || res.Message != "Deleted asset 2" {
		t.Errorf("result = %+v", res)
	}
	if got := idsOf(engine.FullView()); !slices.Equal(got, []int64{1}) {
		t.Errorf("engine view after delete = %v", got)
	}

	if _, err := NewDeleteCommand(api, engine, 2).Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsCommand(t *testing.T) {
	api := newFakeAPI(
		sample(1, domain.AssetTypeAmbient, 300),
		sample(2, domain.AssetTypeAction, 3),
		sample(3, domain.AssetTypeAction, 4),
	)

	res, err := NewStatsCommand(api).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Stats.TotalCount != 3 || res.Stats.TypeCounts["action"] != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Types) != len(domain.AssetTypes) {
		t.Errorf("types = %v", res.Types)
	}
}

func TestGetAndHealthCommands(t *testing.T) {
	api := newFakeAPI(sample(4, domain.AssetTypeAmbient, 300))
	ctx := context.Background()

	a, err := NewGetCommand(api, 4).Execute(ctx)
	if err != nil || a.ID != 4 {
		t.Errorf("Get = %+v, %v", a, err)
	}
	if _, err := NewGetCommand(api, -1).Execute(ctx); err == nil {
		t.Error("expected invalid ID error")
	}

	if err := NewHealthCommand(api).Execute(ctx); err != nil {
		t.Errorf("Health: %v", err)
	}
	api.listErr = errUnreachable
	if err := NewHealthCommand(api).Execute(ctx); !errors.Is(err, errUnreachable) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
