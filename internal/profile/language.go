package profile

import (
	"fmt"
	"strings"
)

// Language 是受支持语言的标识，集合在编译期固定。
// 常量按名称字母序声明，因此数值顺序与名称字典序一致。
type Language uint8

// Unknown 是零值，不属于支持集合
const Unknown Language = 0

const (
	Afrikaans Language = iota + 1
	Albanian
	Arabic
	Armenian
	Basque
	Belarusian
	Bengali
	Bosnian
	Breton
	Bulgarian
	Catalan
	Chinese
	Croatian
	Czech
	Danish
	Dutch
	English
	Esperanto
	Estonian
	Finnish
	French
	Galician
	Georgian
	German
	Greek
	Hebrew
	Hindi
	Hungarian
	Icelandic
	Indonesian
	Irish
	Italian
	Japanese
	Kazakh
	Korean
	Latin
	Latvian
	Lithuanian
	Luxembourgish
	Macedonian
	Malay
	Maltese
	Norwegian
	Persian
	Polish
	Portuguese
	Romanian
	Russian
	Serbian
	Slovak
	Slovene
	Spanish
	Swahili
	Swedish
	Tagalog
	Tamil
	Thai
	Turkish
	Ukrainian
	Urdu
	Uzbek
	Vietnamese
	Welsh
	Yoruba

	languageEnd
)

var languageNames = [...]string{
	Unknown:       "Unknown",
	Afrikaans:     "Afrikaans",
	Albanian:      "Albanian",
	Arabic:        "Arabic",
	Armenian:      "Armenian",
	Basque:        "Basque",
	Belarusian:    "Belarusian",
	Bengali:       "Bengali",
	Bosnian:       "Bosnian",
	Breton:        "Breton",
	Bulgarian:     "Bulgarian",
	Catalan:       "Catalan",
	Chinese:       "Chinese",
	Croatian:      "Croatian",
	Czech:         "Czech",
	Danish:        "Danish",
	Dutch:         "Dutch",
	English:       "English",
	Esperanto:     "Esperanto",
	Estonian:      "Estonian",
	Finnish:       "Finnish",
	French:        "French",
	Galician:      "Galician",
	Georgian:      "Georgian",
	German:        "German",
	Greek:         "Greek",
	Hebrew:        "Hebrew",
	Hindi:         "Hindi",
	Hungarian:     "Hungarian",
	Icelandic:     "Icelandic",
	Indonesian:    "Indonesian",
	Irish:         "Irish",
	Italian:       "Italian",
	Japanese:      "Japanese",
	Kazakh:        "Kazakh",
	Korean:        "Korean",
	Latin:         "Latin",
	Latvian:       "Latvian",
	Lithuanian:    "Lithuanian",
	Luxembourgish: "Luxembourgish",
	Macedonian:    "Macedonian",
	Malay:         "Malay",
	Maltese:       "Maltese",
	Norwegian:     "Norwegian",
	Persian:       "Persian",
	Polish:        "Polish",
	Portuguese:    "Portuguese",
	Romanian:      "Romanian",
	Russian:       "Russian",
	Serbian:       "Serbian",
	Slovak:        "Slovak",
	Slovene:       "Slovene",
	Spanish:       "Spanish",
	Swahili:       "Swahili",
	Swedish:       "Swedish",
	Tagalog:       "Tagalog",
	Tamil:         "Tamil",
	Thai:          "Thai",
	Turkish:       "Turkish",
	Ukrainian:     "Ukrainian",
	Urdu:          "Urdu",
	Uzbek:         "Uzbek",
	Vietnamese:    "Vietnamese",
	Welsh:         "Welsh",
	Yoruba:        "Yoruba",
}

var languageByName = func() map[string]Language {
	m := make(map[string]Language, len(languageNames))
	for l := Language(1); l < languageEnd; l++ {
		m[languageNames[l]] = l
	}
	return m
}()

// String 返回语言名称
func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return fmt.Sprintf("Language(%d)", uint8(l))
}

// Valid 报告 l 是否属于支持集合
func (l Language) Valid() bool {
	return l > Unknown && l < languageEnd
}

// MarshalText 以名称编码，JSON 中语言显示为字符串
func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText 按名称解码
func (l *Language) UnmarshalText(text []byte) error {
	lang, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = lang
	return nil
}

// ParseLanguage 按名称精确查找语言(忽略首尾空白)
func ParseLanguage(name string) (Language, error) {
	l, ok := languageByName[strings.TrimSpace(name)]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return l, nil
}

// Languages 按标识顺序返回全部支持的语言
func Languages() []Language {
	out := make([]Language, 0, int(languageEnd)-1)
	for l := Language(1); l < languageEnd; l++ {
		out = append(out, l)
	}
	return out
}
