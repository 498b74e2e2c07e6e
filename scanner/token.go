package scanner

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	Int
	String
	Blank // the "_" placeholder
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Int:
		return "int"
	case String:
		return "string"
	case Blank:
		return "_"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single statement field. Text is the raw source; Bytes holds
// the decoded content of strings and words; Int is set for integers.
type Token struct {
	Kind  Kind
	Text  string
	Bytes []byte
	Int   int
}

// Tokenize splits one statement into tokens. Words that parse as base-10
// integers become Int tokens.
func Tokenize(stmt string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(stmt) {
		ch := stmt[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
		case ch == '"':
			val, n, err := decodeQuoted(stmt[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: String, Text: stmt[i : i+n], Bytes: val})
			i += n
		case ch == '\'':
			end := strings.IndexByte(stmt[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string %s", stmt[i:])
			}
			raw := stmt[i+1 : i+1+end]
			toks = append(toks, Token{Kind: String, Text: stmt[i : i+end+2], Bytes: []byte(raw)})
			i += end + 2
		default:
			j := i
			for j < len(stmt) && !isSpace(stmt[j]) && stmt[j] != '"' && stmt[j] != '\'' {
				j++
			}
			toks = append(toks, word(stmt[i:j]))
			i = j
		}
	}
	return toks, nil
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\r' }

func word(text string) Token {
	if text == "_" {
		return Token{Kind: Blank, Text: text}
	}
	if n, err := strconv.Atoi(text); err == nil {
		return Token{Kind: Int, Text: text, Int: n}
	}
	return Token{Kind: Word, Text: text, Bytes: []byte(text)}
}

// decodeQuoted decodes the double-quoted literal at the start of s and
// returns its content and the number of source bytes consumed.
func decodeQuoted(s string) ([]byte, int, error) {
	var out []byte
	for i := 1; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			return out, i + 1, nil
		case '\\':
			i++
			if i >= len(s) {
				return nil, 0, fmt.Errorf("unterminated string %s", s)
			}
			switch s[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '0':
				out = append(out, 0)
			case '\\', '"':
				out = append(out, s[i])
			case 'x':
				if i+2 >= len(s) {
					return nil, 0, fmt.Errorf("short \\x escape in %s", s)
				}
				v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
				if err != nil {
					return nil, 0, fmt.Errorf("bad \\x escape %q", s[i-1:i+3])
				}
				out = append(out, byte(v))
				i += 2
			default:
				return nil, 0, fmt.Errorf("unknown escape \\%c", s[i])
			}
		default:
			out = append(out, ch)
		}
	}
	return nil, 0, fmt.Errorf("unterminated string %s", s)
}
