package article

import (
	"fmt"
)

const systemInstruction = `You are a financial writer producing investor-facing market reports. Using the market data and news provided, write a readable long-form market report.
Use numbered section headings in the form "1. 2. 3. ..." and do not decorate headings with Markdown symbols such as ##.
Keep any investment guidance general and educational; never recommend individual securities.
Always discuss safe-haven assets (gold, quality bonds, index funds) and cover the VIX, the dollar index, WTI crude and interest rates.
Close with a bullet-point summary of the Magnificent Seven highlights and the company news by ticker.
Target body length is 2000 to 2600 characters.`

const userPromptTemplate = `Today's market data and talking points:
%s

Write the article from this material.`

const fallbackTemplate = `1. Today's Market Summary (%s)
This report takes a single pass across US equities, currencies, commodities and bonds. It reviews the movement of the key indicators and the background to the day's news, and sets out the points investors should keep in view.

2. Key Indicators
%s

3. The Role of Safe-Haven Assets
When market uncertainty rises, gold, quality bonds and broad index funds tend to hold up comparatively well. A rising VIX signals growing volatility risk, which argues for diversification and a deliberate cash buffer.

4. What Rates and the Dollar Imply
Moves in the US 10-year yield feed into equity valuations through the discount rate. The dollar index acts as a headwind or tailwind for commodity prices, spilling over into the trends in WTI crude and gold.

5. Magnificent Seven Developments
Backed by strong profitability and growth in AI and cloud, these names still carry outsized index weight. Volatility picks up around events and earnings seasons, so disciplined risk management remains essential.

6. Practical Points for Investors
- When volatility rises, revisit position sizing, defensive assets and hedging tools
- Keep diversification, low cost and discipline at the core of long-term investing
- Separate thematic bets from core holdings and prepare for unexpected swings

7. Closing Remarks
Taking today's material together, the sound approach is to avoid swinging to extremes of optimism or pessimism and to keep building judgements on the data.`

func buildUserPrompt(contextText string) string {
	return fmt.Sprintf(userPromptTemplate, contextText)
}
