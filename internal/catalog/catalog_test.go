package catalog

import (
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/jaminalder/codex-arcade/internal/domain"
)

func TestEveryThemeBuildsAtEveryDifficulty(t *testing.T) {
    ids := map[string]bool{}
    for _, theme := range Themes {
        assert.False(t, ids[theme.ID], "duplicate theme id %s", theme.ID)
        ids[theme.ID] = true
        for _, d := range []Difficulty{Easy, Medium} {
            cfg, err := MemoryConfig(theme.ID, d)
            require.NoError(t, err)
            _, err = domain.NewMemory(cfg, domain.NewRand(1))
            assert.NoError(t, err, "%s/%s", theme.ID, d)
        }
    }
}

func TestDifficultySettings(t *testing.T) {
    s, err := Easy.Lookup()
    require.NoError(t, err)
    assert.Equal(t, Settings{Pairs: 6, TimeLimit: 2 * time.Minute}, s)

    s, err = Medium.Lookup()
    require.NoError(t, err)
    assert.Equal(t, Settings{Pairs: 8, TimeLimit: 3 * time.Minute}, s)

    _, err = Difficulty("hard").Lookup()
    assert.True(t, errors.Is(err, ErrUnknownDifficulty))
}

func TestUnknownTheme(t *testing.T) {
    _, err := MemoryConfig("dinosaurs", Easy)
    assert.True(t, errors.Is(err, ErrUnknownTheme))
}
