// Package catalog holds the canonical set of searchable content records for
// the Foxes Technology site. Records are authored here at edit time; the
// publisher pushes them to the search index and the serving path treats the
// set as immutable for the process lifetime.
package catalog

import (
	"github.com/foxestech/foxes-search/internal/domain"
)

// PopularSearches returns the fixed editorial suggestion list shown when the
// query box is empty and offered as fallback queries on empty result sets.
func PopularSearches() []string {
	return []string{
		"AI booking engine",
		"dynamic pricing",
		"channel manager",
		"airline API integration",
		"hotel inventory",
		"white label travel app",
	}
}

// Records returns the full content catalog. The returned slice is a copy;
// the underlying records are shared and must not be mutated.
func Records() []domain.SearchRecord {
	out := make([]domain.SearchRecord, len(records))
	copy(out, records)
	return out
}

// Find returns the record with the given objectID, or false when absent.
func Find(objectID string) (domain.SearchRecord, bool) {
	for _, r := range records {
		if r.ObjectID == objectID {
			return r, true
		}
	}
	return domain.SearchRecord{}, false
}

// FilterByCategory returns all records carrying the given category.
// An empty category returns the full catalog.
func FilterByCategory(category string) []domain.SearchRecord {
	if category == "" {
		return Records()
	}
	var out []domain.SearchRecord
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

var records = []domain.SearchRecord{
	{
		ObjectID:    "home",
		Title:       "Foxes Technology — travel technology that moves your business forward",
		Description: "Booking engines, distribution, and AI-driven tools for airlines, hotels, and travel agencies of every size.",
		Content:     "Foxes Technology builds the digital backbone for modern travel companies. From search and booking to payments and post-trip support, our platform connects airlines, hotels, and agencies with travelers across every channel. Launch faster with ready-made building blocks or go deep with our APIs.",
		URL:         "/",
		Category:    domain.CategoryCompany,
		Tags:        []string{"travel", "platform", "booking"},
		Image:       "/images/hero/home.webp",
	},
	{
		ObjectID:    "about",
		Title:       "About Foxes Technology",
		Description: "Who we are, where we came from, and why we believe travel software should be simple to buy and simple to run.",
		Content:     "Founded by a team of airline and hospitality engineers, Foxes Technology set out to replace brittle legacy travel stacks with software that teams actually enjoy operating. Today we serve carriers, hotel groups, and online agencies across four continents, with offices in Cairo, Dubai, and Riyadh.",
		URL:         "/about",
		Category:    domain.CategoryCompany,
		Tags:        []string{"company", "team", "mission"},
	},
	{
		ObjectID:    "contact",
		Title:       "Contact our sales and support teams",
		Description: "Reach the Foxes Technology team for demos, partnership inquiries, or help with an existing integration.",
		Content:     "Whether you are evaluating the platform, planning a migration, or stuck on an integration detail, our teams answer within one business day. Book a live demo, open a support ticket, or talk to a solutions architect about your rollout.",
		URL:         "/contact",
		Category:    domain.CategoryCompany,
		Tags:        []string{"sales", "support", "demo"},
	},
	{
		ObjectID:    "careers",
		Title:       "Careers at Foxes Technology",
		Description: "Open roles across engineering, product, and commercial teams. Build the software that moves millions of travelers.",
		Content:     "We hire engineers, designers, and travel-industry specialists who want their work to ship. Our teams are small, remote-friendly, and close to customers. Browse open positions and learn how we interview, onboard, and grow people.",
		URL:         "/careers",
		Category:    domain.CategoryCompany,
		Tags:        []string{"jobs", "hiring", "team"},
	},
	{
		ObjectID:    "solution-ai",
		Title:       "AI solutions for travel: smarter search, pricing, and support",
		Description: "Machine-learning tools that personalize trip search, optimize fares in real time, and automate traveler support.",
		Content:     "Our AI suite plugs into your existing booking flow. Semantic trip search understands what travelers mean, not just what they type. Dynamic pricing models react to demand signals in real time, and AI assistants resolve the majority of support conversations without an agent. Everything ships with controls, audit trails, and human handoff.",
		URL:         "/solutions/ai",
		Category:    domain.CategorySolutions,
		Tags:        []string{"ai", "machine learning", "personalization", "pricing"},
		Image:       "/images/solutions/ai.webp",
	},
	{
		ObjectID:    "solution-booking",
		Title:       "Booking engine for airlines, hotels, and agencies",
		Description: "A conversion-optimized booking engine with multi-currency payments, ancillaries, and full brand control.",
		Content:     "The Foxes booking engine handles search, fare selection, seat maps, ancillaries, and payment in a single flow tuned for conversion. It speaks NDC and classic GDS alike, supports more than forty currencies, and renders beautifully in both left-to-right and right-to-left locales.",
		URL:         "/solutions/booking",
		Category:    domain.CategorySolutions,
		Tags:        []string{"booking", "payments", "conversion"},
		Image:       "/images/solutions/booking.webp",
	},
	{
		ObjectID:    "solution-distribution",
		Title:       "Distribution and channel management",
		Description: "Push inventory to OTAs, metasearch, and direct channels from one place, with rates and availability always in sync.",
		Content:     "Connect once and distribute everywhere. Our channel manager keeps rates, availability, and content synchronized across online travel agencies, metasearch engines, and your own direct channels, with conflict detection and automatic retry when a channel falls behind.",
		URL:         "/solutions/distribution",
		Category:    domain.CategorySolutions,
		Tags:        []string{"channel manager", "ota", "inventory"},
	},
	{
		ObjectID:    "solution-white-label",
		Title:       "White label travel apps and portals",
		Description: "Launch branded web and mobile booking experiences in weeks, backed by the full Foxes platform.",
		Content:     "Skip the eighteen-month build. Our white label apps give airlines and agencies a branded storefront on web, iOS, and Android, with your colors, your domain, and your payment providers, all running on the same APIs our largest customers use directly.",
		URL:         "/solutions/white-label",
		Category:    domain.CategorySolutions,
		Tags:        []string{"white label", "mobile", "branding"},
	},
	{
		ObjectID:    "feature-search",
		Title:       "Instant travel search with typo tolerance",
		Description: "Fast, forgiving search across flights, stays, and packages, with highlighting and facet filters built in.",
		Content:     "Travelers misspell city names and airlines alike. Our search layer tolerates typos, understands synonyms in English and Arabic, highlights matched terms, and exposes category and tag facets so visitors can narrow results without retyping.",
		URL:         "/features/search",
		Category:    domain.CategoryFeatures,
		Tags:        []string{"search", "facets", "typo tolerance"},
	},
	{
		ObjectID:    "feature-payments",
		Title:       "Payments and fraud protection",
		Description: "Accept cards, wallets, and local payment methods with built-in fraud screening and automatic reconciliation.",
		Content:     "One integration covers global card schemes, regional wallets, and bank transfers. Every transaction passes through layered fraud screening tuned for travel, and settlement files reconcile themselves against bookings so finance teams stop chasing spreadsheets.",
		URL:         "/features/payments",
		Category:    domain.CategoryFeatures,
		Tags:        []string{"payments", "fraud", "reconciliation"},
	},
	{
		ObjectID:    "feature-analytics",
		Title:       "Analytics and revenue dashboards",
		Description: "Live dashboards for bookings, revenue, and channel performance, with exports and scheduled reports.",
		Content:     "See bookings, revenue, load factors, and channel mix the moment they change. Slice by route, property, agent, or campaign, export anything to CSV, and schedule the reports your leadership team actually reads.",
		URL:         "/features/analytics",
		Category:    domain.CategoryFeatures,
		Tags:        []string{"analytics", "reporting", "dashboards"},
	},
	{
		ObjectID:    "feature-api",
		Title:       "Developer APIs and webhooks",
		Description: "REST APIs, webhooks, and SDKs that cover the entire platform, with sandbox keys available in minutes.",
		Content:     "Everything the platform does is reachable over documented REST APIs with webhook events for every state change. Grab sandbox credentials, follow the quickstarts, and take a booking end to end before your first planning meeting ends.",
		URL:         "/features/api",
		Category:    domain.CategoryFeatures,
		Tags:        []string{"api", "webhooks", "developers"},
	},
	{
		ObjectID:    "pricing",
		Title:       "Pricing plans for every stage",
		Description: "Transparent plans from startup to enterprise, with usage-based pricing and no setup fees on standard tiers.",
		Content:     "Start free in the sandbox, go live on a usage-based plan, and graduate to enterprise terms when volume justifies it. Every plan includes the booking engine, search, and analytics; enterprise adds dedicated infrastructure, custom SLAs, and a named solutions architect.",
		URL:         "/pricing",
		Category:    domain.CategoryPricing,
		Tags:        []string{"plans", "enterprise", "free trial"},
	},
	{
		ObjectID:    "resource-guides",
		Title:       "Guides and implementation playbooks",
		Description: "Step-by-step playbooks for launches, migrations, and integrations, written by the teams that run them.",
		Content:     "From \"first booking in a day\" to multi-brand migrations off legacy reservation systems, our guides document the decisions, sequencing, and pitfalls of real projects so your rollout does not have to rediscover them.",
		URL:         "/resources/guides",
		Category:    domain.CategoryResources,
		Tags:        []string{"guides", "migration", "onboarding"},
	},
	{
		ObjectID:    "resource-case-studies",
		Title:       "Customer case studies",
		Description: "How airlines, hotel groups, and agencies grew bookings and cut costs on the Foxes platform.",
		Content:     "Read how a regional carrier doubled direct bookings in a year, how a hotel group consolidated nine channel tools into one, and how an online agency cut support costs by automating its most common traveler requests.",
		URL:         "/resources/case-studies",
		Category:    domain.CategoryResources,
		Tags:        []string{"case studies", "customers"},
	},
	{
		ObjectID:    "resource-blog",
		Title:       "The Foxes Technology blog",
		Description: "Product updates, engineering write-ups, and commentary on where travel technology is heading.",
		Content:     "New releases, deep dives from our engineering teams, and opinionated takes on NDC, dynamic pricing, and the slow death of the fax machine in hotel distribution. Updated weekly.",
		URL:         "/resources/blog",
		Category:    domain.CategoryResources,
		Tags:        []string{"blog", "news", "engineering"},
	},
	{
		ObjectID:    "faq-getting-started",
		Title:       "FAQ: getting started with Foxes Technology",
		Description: "Answers to the questions new customers ask most about onboarding, timelines, and sandbox access.",
		Content:     "How long does a typical launch take? What do you need from our side? Can we test without signing a contract? This FAQ collects the onboarding questions every new customer asks, with honest answers and links to the relevant guides.",
		URL:         "/faqs#getting-started",
		Category:    domain.CategoryFAQs,
		Tags:        []string{"faq", "onboarding"},
	},
	{
		ObjectID:    "faq-billing",
		Title:       "FAQ: billing, invoicing, and plan changes",
		Description: "How usage is metered, when invoices are issued, and what happens when you change plans mid-cycle.",
		Content:     "Usage is metered per confirmed booking and invoiced monthly in arrears. Plan upgrades apply immediately with prorated billing; downgrades take effect at the next cycle. This FAQ covers taxes, payment methods, and how to read your invoice.",
		URL:         "/faqs#billing",
		Category:    domain.CategoryFAQs,
		Tags:        []string{"faq", "billing", "invoices"},
	},
	{
		ObjectID:    "faq-security",
		Title:       "FAQ: security, compliance, and data residency",
		Description: "Certifications, encryption, data residency options, and how we handle personal traveler data.",
		Content:     "The platform is PCI DSS compliant, encrypts data in transit and at rest, and offers regional data residency for customers with local requirements. This FAQ explains our certifications, subprocessor list, and breach notification commitments.",
		URL:         "/faqs#security",
		Category:    domain.CategoryFAQs,
		Tags:        []string{"faq", "security", "compliance"},
	},
}
