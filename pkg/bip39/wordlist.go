package bip39

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// WordCount 每个词表固定 2048 个单词（11 位索引）。
const WordCount = 2048

// ErrInvalidWordlist 词表长度不是 2048 或存在重复单词。
var ErrInvalidWordlist = errors.New("invalid wordlist")

// Language 内置词表语言。
type Language string

const (
	English            Language = "english"
	Japanese           Language = "japanese"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	Czech              Language = "czech"
	French             Language = "french"
	Italian            Language = "italian"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
)

var sources = map[Language][]string{
	English:            wordlists.English,
	Japanese:           wordlists.Japanese,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
	Czech:              wordlists.Czech,
	French:             wordlists.French,
	Italian:            wordlists.Italian,
	Korean:             wordlists.Korean,
	Spanish:            wordlists.Spanish,
}

// Languages 返回所有内置语言。
func Languages() []Language {
	return []Language{English, Japanese, ChineseSimplified, ChineseTraditional, Czech, French, Italian, Korean, Spanish}
}

// Wordlist 不可变的 2048 词表。查找索引的 key 经过 NFKD 归一化。
type Wordlist struct {
	words    []string
	index    map[string]int
	japanese bool
}

// NewWordlist 用任意 2048 个互不相同的单词构造词表。
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordCount {
		return nil, fmt.Errorf("%w: expected %d words, got %d", ErrInvalidWordlist, WordCount, len(words))
	}
	wl := &Wordlist{
		words: append([]string(nil), words...),
		index: make(map[string]int, WordCount),
	}
	for i, w := range words {
		key := norm.NFKD.String(w)
		if _, dup := wl.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInvalidWordlist, w)
		}
		wl.index[key] = i
	}
	// 日文词表用表意空格 U+3000 连接，按首词判断
	wl.japanese = words[0] == wordlists.Japanese[0]
	return wl, nil
}

// Word 返回索引对应的单词。
func (wl *Wordlist) Word(i int) string { return wl.words[i] }

// Index 查找单词索引，word 会先做 NFKD 归一化。
func (wl *Wordlist) Index(word string) (int, bool) {
	i, ok := wl.index[norm.NFKD.String(word)]
	return i, ok
}

// Words 返回词表副本。
func (wl *Wordlist) Words() []string { return append([]string(nil), wl.words...) }

func (wl *Wordlist) separator() string {
	if wl.japanese {
		return "\u3000"
	}
	return " "
}

var (
	builtinMu sync.Mutex
	builtin   = map[Language]*Wordlist{}
)

// WordlistFor 返回内置语言的词表，首次使用时构建并缓存。
func WordlistFor(lang Language) (*Wordlist, error) {
	if lang == "" {
		lang = English
	}
	builtinMu.Lock()
	defer builtinMu.Unlock()

	if wl, ok := builtin[lang]; ok {
		return wl, nil
	}
	src, ok := sources[lang]
	if !ok {
		return nil, fmt.Errorf("%w: unknown language %q", ErrInvalidWordlist, lang)
	}
	wl, err := NewWordlist(src)
	if err != nil {
		return nil, err
	}
	builtin[lang] = wl
	return wl, nil
}

// DefaultWordlist 英文词表。
func DefaultWordlist() *Wordlist {
	wl, err := WordlistFor(English)
	if err != nil {
		panic(err)
	}
	return wl
}
