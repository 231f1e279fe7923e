package model

// Display content for the public site. None of these reference events; each
// record carries a version counter bumped by the API on every update.

type Banner struct {
	ID       string `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Title    string `gorm:"column:title" json:"title" yaml:"title"`
	ImageURL string `gorm:"column:image_url" json:"image_url" yaml:"image_url"`
	LinkURL  string `gorm:"column:link_url" json:"link_url" yaml:"link_url"`
	Version  int    `gorm:"column:version" json:"version" yaml:"version"`
}

func (m *Banner) TableName() string {
	return "banners"
}

type BannerText struct {
	ID      string `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Text    string `gorm:"column:text" json:"text" yaml:"text"`
	Version int    `gorm:"column:version" json:"version" yaml:"version"`
}

func (m *BannerText) TableName() string {
	return "banner_texts"
}

type ButtonText struct {
	ID      string `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Label   string `gorm:"column:label" json:"label" yaml:"label"`
	Href    string `gorm:"column:href" json:"href" yaml:"href"`
	Version int    `gorm:"column:version" json:"version" yaml:"version"`
}

func (m *ButtonText) TableName() string {
	return "button_texts"
}

// IntroItem is a block of the landing page intro. Body is markdown.
type IntroItem struct {
	ID       string `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Title    string `gorm:"column:title" json:"title" yaml:"title"`
	Body     string `gorm:"column:body" json:"body" yaml:"body"`
	Position int    `gorm:"column:position" json:"position" yaml:"position"`
	Version  int    `gorm:"column:version" json:"version" yaml:"version"`
}

func (m *IntroItem) TableName() string {
	return "intro_items"
}

// Seed is the shape of the demo content file loaded into an empty database.
type Seed struct {
	Events      []Event      `yaml:"events"`
	Banners     []Banner     `yaml:"banners"`
	BannerTexts []BannerText `yaml:"banner_texts"`
	ButtonTexts []ButtonText `yaml:"button_texts"`
	IntroItems  []IntroItem  `yaml:"intro_items"`
}
