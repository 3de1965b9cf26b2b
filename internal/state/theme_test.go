package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinelist/internal/domain"
)

func TestTheme_DefaultsToDark(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
		want   domain.Theme
	}{
		{"absent", "", false, domain.ThemeDark},
		{"garbage", "sepia", true, domain.ThemeDark},
		{"light", "light", true, domain.ThemeLight},
		{"dark", "dark", true, domain.ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			if tt.set {
				require.NoError(t, kv.Set(domain.KeyTheme, tt.stored))
			}
			assert.Equal(t, tt.want, NewTheme(kv, nil).Current())
		})
	}
}

func TestTheme_ToggleIsItsOwnInverse(t *testing.T) {
	for _, start := range []domain.Theme{domain.ThemeLight, domain.ThemeDark} {
		kv := newMemKV()
		require.NoError(t, kv.Set(domain.KeyTheme, string(start)))
		th := NewTheme(kv, nil)

		assert.Equal(t, start.Opposite(), th.Toggle())
		persisted, _ := kv.Get(domain.KeyTheme)
		assert.Equal(t, string(start.Opposite()), persisted)

		assert.Equal(t, start, th.Toggle())
		persisted, _ = kv.Get(domain.KeyTheme)
		assert.Equal(t, string(start), persisted)
	}
}

func TestTheme_Set(t *testing.T) {
	kv := newMemKV()
	th := NewTheme(kv, nil)

	require.NoError(t, th.Set(domain.ThemeLight))
	assert.Equal(t, domain.ThemeLight, th.Current())
	v, _ := kv.Get(domain.KeyTheme)
	assert.Equal(t, "light", v)

	writes := kv.writeCount(domain.KeyTheme)
	err := th.Set("sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.Equal(t, domain.ThemeLight, th.Current())
	assert.Equal(t, writes, kv.writeCount(domain.KeyTheme))
}

func TestTheme_SubscribersObserveChanges(t *testing.T) {
	th := NewTheme(newMemKV(), nil)

	var seen []domain.Theme
	unsubscribe := th.Subscribe(func(v domain.Theme) { seen = append(seen, v) })

	th.Toggle()
	require.NoError(t, th.Set(domain.ThemeLight))
	unsubscribe()
	th.Toggle()

	assert.Equal(t, []domain.Theme{domain.ThemeLight, domain.ThemeLight}, seen)
}

func TestTheme_SubscriberMayReadState(t *testing.T) {
	th := NewTheme(newMemKV(), nil)

	var current domain.Theme
	th.Subscribe(func(domain.Theme) { current = th.Current() })
	th.Toggle()

	assert.Equal(t, domain.ThemeLight, current)
}

func TestTheme_PersistFailureStillChanges(t *testing.T) {
	kv := newMemKV()
	kv.failOn[domain.KeyTheme] = true
	th := NewTheme(kv, nil)

	assert.Equal(t, domain.ThemeLight, th.Toggle())
	assert.Equal(t, domain.ThemeLight, th.Current())
}
