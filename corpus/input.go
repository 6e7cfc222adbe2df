package corpus

import (
	"bufio"
	"io"
	"strings"
)

const (
	groupSep = "-1"
	seqEnd   = "-2"
)

// ParseCorpus reads a corpus from r: one sequence per line, groups
// separated by the literal token "-1", each line terminated by the
// literal token "-2".
func ParseCorpus(r io.Reader) (Corpus, error) {
	var corpus Corpus

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		seq, err := ParseSequenceLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, seq)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return corpus, nil
}

// ParseSequenceLine parses a single sequence line (the unit ParseCorpus
// applies per line), exposed so callers that also need the raw source
// text (e.g. to echo a selected line back verbatim) can drive the
// per-line parse themselves.
func ParseSequenceLine(line string, lineNo int) (Sequence, error) {
	tokens := strings.Fields(line)

	var seq Sequence
	var group []string
	terminated := false

	for i, tok := range tokens {
		switch tok {
		case groupSep:
			seq = append(seq, NewGroup(group...))
			group = nil
		case seqEnd:
			if len(group) != 0 {
				return nil, &InputError{Line: lineNo, Message: "elements found after last -1 and before -2"}
			}
			if i != len(tokens)-1 {
				return nil, &InputError{Line: lineNo, Message: "stray token after -2"}
			}
			terminated = true
		default:
			group = append(group, tok)
		}
	}

	if !terminated {
		return nil, &InputError{Line: lineNo, Message: "missing -2 terminator"}
	}

	return seq, nil
}
