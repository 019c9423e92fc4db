package content

// Friendly defaults served before admins configure any content, so the
// frontend can always render something presentable.

func defaultMissionPage() *MissionPage {
	return &MissionPage{
		TitleEN: "House of Bijou",
		TitleJA: "House of Bijou",
		BodyEN:  "House of Bijou celebrates the shared roots and solidarity between African/Black and Asian communities.",
		BodyJA:  "House of Bijou は、アフリカン/ブラックとアジアのコミュニティのつながりと連帯を祝福します。",
	}
}

func defaultCleaningPage() *CleaningPage {
	return &CleaningPage{
		TitleEN:       "Airbnb Cleaning",
		TitleJA:       "清掃サービス",
		DescriptionEN: "Professional, reliable short-stay cleaning by members of the house. Flexible scheduling and hotel-standard turnover.",
		DescriptionJA: "コミュニティメンバーによる信頼できる清掃。柔軟なスケジュールとホテル品質の仕上がり。",
		CTAEN:         "Tell us your schedule and property details — we'll get back with a quote.",
		CTAJA:         "日程と物件情報をお知らせください。お見積もりをご連絡します。",
		Features: []CleaningFeature{
			{TextEN: "Full turnover: linens, bathroom, kitchen, reset staging", TextJA: "フルターン：リネン、バスルーム、キッチン、ステージング復元", Color: "primary"},
			{TextEN: "Restock consumables and basic supplies", TextJA: "消耗品・基本備品の補充", Color: "accent"},
			{TextEN: "Flexible scheduling and quick response", TextJA: "柔軟なスケジュールと迅速対応", Color: "secondary"},
			{TextEN: "Photo reporting on completion (optional)", TextJA: "写真レポート（任意）", Color: "primary"},
		},
	}
}

func defaultEventsPageSettings() *EventsPageSettings {
	return &EventsPageSettings{
		TitleEN:    "Upcoming Events",
		TitleJA:    "イベント情報",
		SubtitleEN: "Join community gatherings, volunteer days, and workshops. New dates drop regularly — check back soon!",
		SubtitleJA: "コミュニティイベント、ボランティア、ワークショップなど。最新情報をお見逃しなく！",
	}
}
