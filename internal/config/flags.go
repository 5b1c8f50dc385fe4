package config

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

// OverridesEnv holds comma separated key=value flag overrides
const OverridesEnv = "TRACKER_FLAG_OVERRIDES"

var (
	flagMapMu sync.RWMutex
	allFlags  = make(map[string]AnyFlag)
)

// AnyFlag is a flag of any value type
type AnyFlag interface {
	InternalName() string
	HumanName() string
	set(raw json.RawMessage) error
	setString(raw string) error
	value() any
}

type Flag[T any] interface {
	Value() T
	InternalName() string
	HumanName() string
}

type flag[T any] struct {
	mu        sync.RWMutex
	name      string
	val       T
	humanName string
}

func (f *flag[T]) Value() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.val
}

func (f *flag[T]) InternalName() string {
	return f.name
}

func (f *flag[T]) HumanName() string {
	return f.humanName
}

func (f *flag[T]) value() any {
	return f.Value()
}

func (f *flag[T]) set(raw json.RawMessage) error {
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return fmt.Errorf("invalid value, flag expected %T", f.val)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.val = val
	return nil
}

// setString accepts unquoted strings, overrides rarely carry quotes
func (f *flag[T]) setString(raw string) error {
	if _, ok := any(f.val).(string); ok && !strings.HasPrefix(raw, `"`) {
		b, _ := json.Marshal(raw)
		return f.set(b)
	}
	return f.set(json.RawMessage(raw))
}

func GenFlag[T any](name string, defaultVal T, readableName string) Flag[T] {
	flagMapMu.Lock()
	defer flagMapMu.Unlock()
	f := &flag[T]{name: name, val: defaultVal, humanName: readableName}
	allFlags[name] = f
	return f
}

func GetFlagVal[T any](name string) (T, bool) {
	flagMapMu.RLock()
	defer flagMapMu.RUnlock()
	if v, ok := allFlags[name].(*flag[T]); ok {
		return v.Value(), true
	}
	return *new(T), false
}

// Flags lists every registered flag, sorted by name.
func Flags() []AnyFlag {
	flagMapMu.RLock()
	defer flagMapMu.RUnlock()
	flags := make([]AnyFlag, 0, len(allFlags))
	for _, flg := range allFlags {
		flags = append(flags, flg)
	}
	slices.SortFunc(flags, func(a, b AnyFlag) int {
		return cmp.Compare(a.InternalName(), b.InternalName())
	})
	return flags
}

// LoadFlags applies the JSON flag file at path (if it exists), then the overrides from the environment.
func LoadFlags(ctx context.Context, path string) error {
	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.DebugContext(ctx, "No flag file, using defaults", slog.String("path", path))
		case err != nil:
			return err
		default:
			defer f.Close()
			if err := ReadFlags(ctx, f); err != nil {
				return fmt.Errorf("could not read flags from %q: %w", path, err)
			}
		}
	}
	ApplyOverrides(ctx, os.Getenv(OverridesEnv))
	return nil
}

func ReadFlags(ctx context.Context, r io.Reader) error {
	var data = make(map[string]json.RawMessage)
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	flagMapMu.RLock()
	defer flagMapMu.RUnlock()
	for key, raw := range data {
		flg, ok := allFlags[key]
		if !ok {
			slog.WarnContext(ctx, "Unknown flag", slog.String("key", key))
			continue
		}
		if err := flg.set(raw); err != nil {
			slog.WarnContext(ctx, "Couldn't update flag", slog.String("key", key), slog.Any("err", err))
		}
	}
	return nil
}

func ApplyOverrides(ctx context.Context, overrides string) {
	flagMapMu.RLock()
	defer flagMapMu.RUnlock()
	for _, override := range strings.Split(overrides, ",") {
		if override == "" {
			continue
		}
		key, val, found := strings.Cut(override, "=")
		if !found {
			slog.WarnContext(ctx, "Invalid override", slog.String("override", override))
			continue
		}
		flg, ok := allFlags[key]
		if !ok {
			slog.WarnContext(ctx, "Could not find flag", slog.String("name", key))
			continue
		}
		if err := flg.setString(val); err != nil {
			slog.WarnContext(ctx, "Invalid flag override", slog.Any("err", err), slog.String("key", key))
		}
	}
}

// WriteFlags dumps the current flag values, usable as a starting flag file.
func WriteFlags(w io.Writer) error {
	data := make(map[string]any)
	for _, flg := range Flags() {
		data[flg.InternalName()] = flg.value()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(data)
}
