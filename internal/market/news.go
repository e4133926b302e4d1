package market

// Template pools for generated news. Fixed after construction; the optional
// headline augmentation only runs before the market is built.
var (
	positiveNewsTemplates = []string{
		"The company released better-than-expected financial results, with net profit rising 30% year-on-year.",
		"The company has been granted a significant patent, further expanding its technological edge.",
		"The company has entered into a strategic cooperation agreement with an industry leader.",
		"The company's new product has garnered an enthusiastic market response, with orders surging significantly.",
		"Analysts raised the company's target price and are optimistic about its future development prospects.",
		"The company announced a large-scale share repurchase plan, demonstrating management confidence",
		"With favorable industry policies, the company is expected to benefit.",
		"The company's overseas business expansion has been smooth and its market share has increased.",
	}

	negativeNewsTemplates = []string{
		"The company's financial report fell short of expectations, with net profit dropping by 20% year-on-year.",
		"The company is facing a major lawsuit, which may result in significant compensation claims.",
		"The company's main customers have lost interest and the order volume has decreased significantly.",
		"The industry regulatory policy has tightened and the company's business has been affected.",
		"The company's senior management has left, causing market concerns.",
		"The company's product has quality issues and is facing a recall risk.",
		"Analysts downgraded the company's rating and significantly lowered the target price.",
		"The company's cash flow is tight and the debt repayment pressure is increasing.",
	}

	neutralNewsTemplates = []string{
		"The company released a routine announcement, with no major changes.",
		"The overall market is volatile, and the company's stock price follows the adjustment.",
		"The company participated in the industry conference and shared development experience.",
		"The company completed routine business adjustments and is operating normally.",
	}
)

const calmMarketNews = "Today's market is calm, no major news"
