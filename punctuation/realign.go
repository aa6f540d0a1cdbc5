package punctuation

import "github.com/kbukum/diarscribe/transcript"

// DefaultMaxWordsInSentence bounds how far Realign searches for sentence edges.
const DefaultMaxWordsInSentence = 50

// Realign re-attributes words around a speaker change that falls inside a
// sentence. For each word followed by a different speaker and not ending a
// sentence, the enclosing sentence is located (bounded by maxWords); if one
// speaker holds at least half of its words, the whole sentence is assigned
// to that speaker. Ties go to the speaker appearing first. The input is not
// modified.
func Realign(entries []transcript.Entry, maxWords int) []transcript.Entry {
	if maxWords <= 0 {
		maxWords = DefaultMaxWordsInSentence
	}
	out := make([]transcript.Entry, len(entries))
	copy(out, entries)

	n := len(out)
	for k := 0; k < n; k++ {
		if k == n-1 || out[k].SpeakerID == out[k+1].SpeakerID || out[k].EndsSentence() {
			continue
		}
		left := sentenceStart(out, k, maxWords)
		if left < 0 {
			continue
		}
		right := sentenceEnd(out, k, maxWords-(k-left)-1)
		if right < 0 {
			continue
		}

		speaker, count := majority(out[left : right+1])
		if count < (right-left+1)/2 {
			continue
		}
		for i := left; i <= right; i++ {
			out[i].SpeakerID = speaker
		}
		k = right
	}
	return out
}

// sentenceStart walks left from k over same-speaker words until the
// previous word ends a sentence. It returns -1 if no boundary is found
// within maxWords.
func sentenceStart(entries []transcript.Entry, k, maxWords int) int {
	left := k
	for left > 0 && k-left < maxWords &&
		entries[left-1].SpeakerID == entries[left].SpeakerID &&
		!entries[left-1].EndsSentence() {
		left--
	}
	if left == 0 || entries[left-1].EndsSentence() {
		return left
	}
	return -1
}

// sentenceEnd walks right from k to the next sentence-ending word. It
// returns -1 if none is found within maxWords and the input does not end first.
func sentenceEnd(entries []transcript.Entry, k, maxWords int) int {
	right := k
	for right < len(entries)-1 && right-k < maxWords && !entries[right].EndsSentence() {
		right++
	}
	if right == len(entries)-1 || entries[right].EndsSentence() {
		return right
	}
	return -1
}

func majority(entries []transcript.Entry) (speaker, count int) {
	counts := make(map[int]int)
	var order []int
	for _, e := range entries {
		if counts[e.SpeakerID] == 0 {
			order = append(order, e.SpeakerID)
		}
		counts[e.SpeakerID]++
	}
	for _, s := range order {
		if counts[s] > count {
			speaker, count = s, counts[s]
		}
	}
	return speaker, count
}
