package pdfs

// Role names a semantic text style
type Role string

const (
	RoleHeaderBand     Role = "header-band"
	RoleAccentBand     Role = "accent-band"
	RoleLabel          Role = "label"
	RoleValue          Role = "value"
	RoleTotalRow       Role = "total-row"
	RoleGrandTotalRow  Role = "grand-total-row"
	RoleTitle          Role = "title"
	RoleSubtitle       Role = "subtitle"
	RoleSection        Role = "section"
	RoleBody           Role = "body"
	RoleMuted          Role = "muted"
	RoleTableHead      Role = "table-head"
	RoleCell           Role = "cell"
	RoleCellCenter     Role = "cell-center"
	RoleSignatureLabel Role = "signature-label"
	RoleSignatureSub   Role = "signature-sub"
	RoleLogoFallback   Role = "logo-fallback"
)

// Colors of a document family
type Colors struct {
	Primary   Color
	Secondary Color
	Accent    Color
	Dark      Color
	Text      Color
	Gray      Color
	Border    Color
	TitleSub  Color // number under the title band
	Faint     Color // footer timestamp line
	ZebraRow  Color // alternating table rows
	Purple    Color
	Emerald   Color
	Amber     Color
	Mint      Color // receiving-party signature tint
}

var FlotechColors = Colors{
	Primary:   Hex("#0B3D91"),
	Secondary: Hex("#1E5CC6"),
	Accent:    Hex("#EEF3FB"),
	Dark:      Hex("#1A1A2E"),
	Text:      Hex("#374151"),
	Gray:      Hex("#6B7280"),
	Border:    Hex("#D1D5DB"),
	TitleSub:  Hex("#BFD3F5"),
	Faint:     Hex("#9CA3AF"),
	ZebraRow:  Hex("#F9FAFB"),
	Purple:    Hex("#7C3AED"),
	Emerald:   Hex("#059669"),
	Amber:     Hex("#D97706"),
	Mint:      Hex("#ECFDF5"),
}

// Palette is an immutable registry of styles keyed by Role.
// Share it by reference; Style returns copies.
type Palette struct {
	colors Colors
	styles map[Role]Style
}

func NewPalette(c Colors) *Palette {
	cell := Style{Size: 9, Color: c.Dark, VAlign: VAlignMiddle, Padding: PadXY(1.8, 1.6)}
	styles := map[Role]Style{
		RoleTitle:          {Emphasis: "B", Size: 14, Color: White, Align: AlignRight, Padding: PadXY(3.5, 1)},
		RoleSubtitle:       {Size: 9, Color: c.TitleSub, Align: AlignRight, Padding: PadXY(3.5, 1)},
		RoleSection:        {Emphasis: "B", Size: 10, Color: c.Primary, Padding: Padding{Top: 2.5, Bottom: 1}},
		RoleLabel:          {Emphasis: "B", Size: 8, Color: c.Gray, VAlign: VAlignMiddle, Padding: Pad(3.2)},
		RoleValue:          {Emphasis: "B", Size: 10, Color: c.Dark, VAlign: VAlignMiddle, Padding: Pad(3.2)},
		RoleBody:           {Size: 9, Color: c.Text, Padding: Pad(2.8), Leading: 1.45},
		RoleMuted:          {Size: 8, Color: c.Gray},
		RoleHeaderBand:     {Emphasis: "B", Size: 9, Color: White, Fill: c.Primary, Filled: true, Padding: Pad(2.8)},
		RoleAccentBand:     {Size: 9, Color: c.Text, Fill: c.Accent, Filled: true, Padding: Pad(2.8), Leading: 1.45},
		RoleTableHead:      {Emphasis: "B", Size: 8.5, Color: White, Align: AlignCenter, VAlign: VAlignMiddle, Padding: PadXY(1.8, 2.1)},
		RoleCell:           cell,
		RoleCellCenter:     cell.WithAlign(AlignCenter),
		RoleTotalRow:       {Emphasis: "B", Size: 9, Color: c.Dark, Fill: c.Accent, Filled: true, Align: AlignRight, VAlign: VAlignMiddle, Padding: PadXY(1.8, 1.8)},
		RoleGrandTotalRow:  {Emphasis: "B", Size: 10, Color: White, Fill: c.Primary, Filled: true, Align: AlignRight, VAlign: VAlignMiddle, Padding: PadXY(1.8, 2.1)},
		RoleSignatureLabel: {Emphasis: "B", Size: 9, Color: c.Primary, Align: AlignCenter, VAlign: VAlignMiddle, Padding: Pad(2.8)},
		RoleSignatureSub:   {Size: 8, Color: c.Gray, Align: AlignCenter, Padding: PadXY(2.8, 0.8), Leading: 1.4},
		RoleLogoFallback:   {Emphasis: "B", Size: 16, Color: c.Primary, VAlign: VAlignMiddle},
	}
	return &Palette{colors: c, styles: styles}
}

// Default is the palette every Flotech document starts from
var Default = NewPalette(FlotechColors)

// Style returns the style of role. Unknown roles get the body style.
func (p *Palette) Style(r Role) Style {
	if s, ok := p.styles[r]; ok {
		return s
	}
	return p.styles[RoleBody]
}

func (p *Palette) Colors() Colors {
	return p.colors
}
