package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTextEnglish(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "stock low",
			event: Event{Kind: KindStockLow, Language: "en", ProductName: "Milk Packet"},
			want:  "Milk Packet is running low",
		},
		{
			name:  "bill question",
			event: Event{Kind: KindBillQuestion, Language: "en", Amount: 150},
			want:  "Amount is 150 rupees. Do you want a bill?",
		},
		{
			name:  "sale complete",
			event: Event{Kind: KindSaleComplete, Language: "en", Amount: 90.5},
			want:  "Sale completed. Amount 90.5 rupees.",
		},
		{
			name:  "daily summary",
			event: Event{Kind: KindDailySummary, Language: "en", Revenue: 1200, Profit: 260, TopProduct: "Milk Packet"},
			want:  "Today total sales 1200 rupees. Profit 260 rupees. Top selling product Milk Packet.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Text())
		})
	}
}

func TestEventTextTamil(t *testing.T) {
	stock := Event{Kind: KindStockLow, Language: "ta", ProductName: "பால் பாக்கெட்"}
	assert.Equal(t, "பால் பாக்கெட் குறைவாக இருக்கு", stock.Text())

	bill := Event{Kind: KindBillQuestion, Language: "ta", Amount: 150}
	assert.Equal(t, "தொகை 150 ரூபாய் ஆகுது. பில் வேணுமா?", bill.Text())

	done := Event{Kind: KindSaleComplete, Language: "ta", Amount: 90}
	assert.Equal(t, "விற்பனை முடிந்தது. தொகை 90 ரூபாய்.", done.Text())

	summary := Event{Kind: KindDailySummary, Language: "ta", Revenue: 1200, Profit: 260, TopProduct: "பால் பாக்கெட்"}
	assert.Equal(t, "இன்று மொத்த விற்பனை 1200 ரூபாய். லாபம் 260 ரூபாய். அதிகம் விற்ற பொருள் பால் பாக்கெட்.", summary.Text())
}

func TestRupeesDropsTrailingZeros(t *testing.T) {
	assert.Equal(t, "30", rupees(30))
	assert.Equal(t, "30.5", rupees(30.5))
	assert.Equal(t, "0", rupees(0))
}
