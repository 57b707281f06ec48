package catalog

import (
    "errors"
    "fmt"
    "time"

    "github.com/jaminalder/codex-arcade/internal/domain"
)

// Errors returned by lookups.
var (
    ErrUnknownTheme      = errors.New("unknown memory theme")
    ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Difficulty selects the pair count and time limit of a memory run.
type Difficulty string

const (
    Easy   Difficulty = "easy"
    Medium Difficulty = "medium"
)

// Settings are the per-difficulty memory limits.
type Settings struct {
    Pairs     int
    TimeLimit time.Duration
}

var difficulties = map[Difficulty]Settings{
    Easy:   {Pairs: 6, TimeLimit: 120 * time.Second},
    Medium: {Pairs: 8, TimeLimit: 180 * time.Second},
}

// Lookup returns the settings for d.
func (d Difficulty) Lookup() (Settings, error) {
    s, ok := difficulties[d]
    if !ok {
        return Settings{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
    }
    return s, nil
}

// Theme is a named symbol set for the memory game.
type Theme struct {
    ID      string   `json:"id"`
    Name    string   `json:"name"`
    Symbols []string `json:"symbols"`
}

// Themes lists every memory theme in menu order.
var Themes = []Theme{
    // animals
    {ID: "farm-animals", Name: "Farm Animals", Symbols: []string{"🐮", "🐷", "🐔", "🐑", "🐴", "🦃", "🐰", "🦆"}},
    {ID: "wild-animals", Name: "Wild Animals", Symbols: []string{"🦁", "🐯", "🐘", "🦒", "🦊", "🦝", "🦘", "🦬"}},
    {ID: "sea-animals", Name: "Sea Animals", Symbols: []string{"🐋", "🐬", "🦈", "🐟", "🐠", "🦀", "🦑", "🐙"}},
    {ID: "insects", Name: "Insects", Symbols: []string{"🦋", "🐛", "🐜", "🐝", "🐞", "🦗", "🕷️", "🦂"}},
    {ID: "birds", Name: "Birds", Symbols: []string{"🦅", "🦜", "🦢", "🦩", "🦚", "🦃", "🦉", "🐧"}},

    // food
    {ID: "fruits", Name: "Fruits", Symbols: []string{"🍎", "🍌", "🍇", "🍊", "🍓", "🍑", "🥝", "🍍"}},
    {ID: "vegetables", Name: "Vegetables", Symbols: []string{"🥕", "🥦", "🥬", "🥒", "🍅", "🌽", "🥔", "🧅"}},
    {ID: "fast-food", Name: "Fast Food", Symbols: []string{"🍔", "🍟", "🌭", "🍕", "🌮", "🌯", "🥪", "🥤"}},
    {ID: "desserts", Name: "Desserts", Symbols: []string{"🍦", "🍰", "🧁", "🍪", "🍫", "🍩", "🥞", "🍮"}},
    {ID: "drinks", Name: "Drinks", Symbols: []string{"☕", "🍵", "🧃", "🥤", "🧋", "🍷", "🍹", "🥂"}},

    // sport and leisure
    {ID: "ball-sports", Name: "Ball Sports", Symbols: []string{"⚽", "🏀", "🏈", "⚾", "🎾", "🏐", "🏉", "🎱"}},
    {ID: "olympic-sports", Name: "Olympic Sports", Symbols: []string{"🏊‍♂️", "🤸‍♂️", "🏃‍♂️", "🚴‍♂️", "🤺", "🏹", "⛹️‍♂️", "🏋️‍♂️"}},
    {ID: "music", Name: "Music", Symbols: []string{"🎸", "🎹", "🎺", "🎻", "🥁", "🎷", "🪗", "🎼"}},
    {ID: "games", Name: "Games", Symbols: []string{"🎮", "🎲", "🎯", "🎳", "🎪", "🎨", "🎭", "🃏"}},
    {ID: "activities", Name: "Activities", Symbols: []string{"🎣", "🤿", "🏹", "🎯", "🪂", "🏄‍♂️", "🚣‍♂️", "🧗‍♂️"}},

    // transport and places
    {ID: "transport", Name: "Transport", Symbols: []string{"✈️", "🚗", "🚂", "🚢", "🚁", "🚲", "🚌", "🛵"}},
    {ID: "places", Name: "Places", Symbols: []string{"🗽", "🗼", "🗿", "🎡", "🎢", "⛰️", "🌋", "🏖️"}},
    {ID: "buildings", Name: "Buildings", Symbols: []string{"🏰", "🏛️", "⛪", "🏢", "🏤", "🏨", "🏪", "🏫"}},
    {ID: "landmarks", Name: "Landmarks", Symbols: []string{"🗽", "🗼", "🗿", "🏛️", "🏰", "⛩️", "🕌", "🕍"}},
    {ID: "nature-places", Name: "Nature Spots", Symbols: []string{"🌋", "⛰️", "🏖️", "🏜️", "🏝️", "🏞️", "❄️", "🌲"}},

    // nature and weather
    {ID: "flowers", Name: "Flowers", Symbols: []string{"🌸", "🌹", "🌺", "🌻", "🌼", "🌷", "💐", "🌱"}},
    {ID: "weather", Name: "Weather", Symbols: []string{"☀️", "🌤️", "☁️", "🌧️", "⛈️", "❄️", "🌈", "⚡"}},
    {ID: "space", Name: "Space", Symbols: []string{"🌎", "🌙", "⭐", "🚀", "🛸", "☄️", "🌠", "🌌"}},
    {ID: "plants", Name: "Plants", Symbols: []string{"🌲", "🌳", "🌴", "🌵", "🌾", "🌿", "☘️", "🍀"}},
    {ID: "seasons", Name: "Seasons", Symbols: []string{"🌸", "☀️", "🍁", "❄️", "🌺", "🌻", "🍂", "⛄"}},
}

// FindTheme looks a theme up by ID.
func FindTheme(id string) (Theme, error) {
    for _, t := range Themes {
        if t.ID == id {
            return t, nil
        }
    }
    return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}

// MemoryConfig resolves a theme and difficulty into engine parameters.
func MemoryConfig(themeID string, d Difficulty) (domain.MemoryConfig, error) {
    theme, err := FindTheme(themeID)
    if err != nil {
        return domain.MemoryConfig{}, err
    }
    s, err := d.Lookup()
    if err != nil {
        return domain.MemoryConfig{}, err
    }
    return domain.MemoryConfig{Symbols: theme.Symbols, Pairs: s.Pairs, TimeLimit: s.TimeLimit}, nil
}

// Game describes one entry of the top-level menu.
type Game struct {
    Kind  domain.Kind `json:"kind"`
    Title string      `json:"title"`
}

// Games lists the non-memory games.
var Games = []Game{
    {Kind: domain.KindTicTacToe, Title: "Tic-Tac-Toe"},
    {Kind: domain.KindCheckers, Title: "Checkers"},
    {Kind: domain.Kind2048, Title: "2048"},
    {Kind: domain.KindSnake, Title: "Snake"},
}
