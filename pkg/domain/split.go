package domain

// TelegramMaxMessageLength is the hard limit Telegram places on a single
// text message.
const TelegramMaxMessageLength = 4096

// SplitText slices text into consecutive segments of at most maxLength
// characters, preserving order. The last segment may be shorter. Empty input
// yields no segments. Splitting happens at fixed boundaries with no regard
// for word breaks.
func SplitText(text string, maxLength int) []string {
	if text == "" || maxLength <= 0 {
		return nil
	}

	runes := []rune(text)

	var chunks []string
	for start := 0; start < len(runes); start += maxLength {
		end := start + maxLength
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
