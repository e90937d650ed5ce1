package domain

import (
	"strconv"
	"strings"
)

const (
	MinCount = 1
	MaxCount = 10

	// ParticipantSuffix turns a phone number into a user identifier of the
	// automation client.
	ParticipantSuffix = "@s.whatsapp.net"
)

// ParseParticipants splits text on whitespace, keeps only the digits of each
// token and appends ParticipantSuffix. Tokens without any digit are dropped.
func ParseParticipants(text string) []string {
	fields := strings.Fields(text)
	participants := make([]string, 0, len(fields))
	for _, field := range fields {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, field)
		if digits == "" {
			continue
		}
		participants = append(participants, digits+ParticipantSuffix)
	}

	return participants
}

// ParseCount never rejects: unparsable input becomes MinCount and the result
// is clamped into [MinCount, MaxCount].
func ParseCount(text string) int {
	value, err := strconv.Atoi(leadingInteger(text))
	if err != nil {
		value = MinCount
	}

	return ClampCount(value)
}

func ClampCount(value int) int {
	if value < MinCount {
		return MinCount
	}
	if value > MaxCount {
		return MaxCount
	}
	return value
}

// leadingInteger keeps an optional sign and the leading run of digits, so
// "7 groups" reads as 7.
func leadingInteger(text string) string {
	trimmed := strings.TrimSpace(text)
	end := 0
	for i, r := range trimmed {
		if i == 0 && (r == '-' || r == '+') {
			end = i + 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}

	return trimmed[:end]
}

// UnitLabel is the name given to the i-th unit of a batch (1-based).
func UnitLabel(name string, i int) string {
	return name + " #" + strconv.Itoa(i)
}
