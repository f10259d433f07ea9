package stats

import "time"

//nolint:gochecknoglobals // fixed list, indexed by day.
var quotes = []string{
	"Progress hides in unremarkable days.",
	"You don't need motivation, you need a routine.",
	"The work counts even when no one sees it.",
	"You train because skipping is easy.",
	"Average days build exceptional outcomes.",
	"The body responds to what you repeat.",
	"Progress is built quietly, then revealed.",
	"Train like today matters because it does.",
	"Show discipline before demanding results.",
	"Power is built one clean rep at a time.",
	"Back days build posture, patience, and power.",
	"If it's uncomfortable, you're doing it right.",
	"You leave stronger than you arrived.",
	"Every session is a vote for the person you're becoming.",
	"You are exactly as disciplined as your results show.",
	"Show up long after motivation leaves.",
	"Respect the weight and the process.",
	"You leave stronger because you chose to stay disciplined.",
	"You don't need perfect days. You need committed ones.",
	"The body adapts to standards you enforce.",
	"Progress doesn't announce itself, it accumulates.",
	"The only person you are destined to become is the person you decide to be.",
	"Your body can stand almost anything. It's your mind that you have to convince.",
	"The resistance that you fight physically in the gym and the resistance that you fight in life can only build a strong character.",
	"Discipline is doing what needs to be done, even if you don't want to do it.",
}

// QuoteOfDay returns the motivation quote for the UTC day of now. The choice is stable within a day.
func QuoteOfDay(now time.Time) string {
	days := now.UnixMilli() / (24 * time.Hour).Milliseconds()
	i := days % int64(len(quotes))
	if i < 0 {
		i += int64(len(quotes))
	}
	return quotes[i]
}
