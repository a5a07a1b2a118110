package models

import (
	"database/sql/driver"
	"time"

	"github.com/Christosun/flotech-report-system/nullable"
)

// LetterType is the direction of a handover letter
type LetterType string

const (
	LetterSerah  LetterType = "serah"  // first party hands over
	LetterTerima LetterType = "terima" // first party receives
)

// ParseLetterType maps anything but "terima" to LetterSerah
func ParseLetterType(s string) LetterType {
	if LetterType(s) == LetterTerima {
		return LetterTerima
	}
	return LetterSerah
}

type HandoverItem struct {
	No         FlexString `json:"no"`
	NamaBarang FlexString `json:"nama_barang"`
	Jumlah     FlexString `json:"jumlah"`
	Satuan     FlexString `json:"satuan"`
	Keterangan FlexString `json:"keterangan"`
}

type HandoverItems []HandoverItem

func (items *HandoverItems) Scan(value any) error {
	*items = nil
	return scanJSON(value, items)
}

func (items HandoverItems) Value() (driver.Value, error) {
	if items == nil {
		items = HandoverItems{}
	}
	return valueJSON([]HandoverItem(items))
}

// Party is one side of a handover letter
type Party struct {
	Name      string
	Title     string
	Company   string
	Address   string
	Signature string
}

type HandoverLetter struct {
	ID                     int64         `json:"id"`
	SuratNumber            string        `json:"surat_number"`
	SuratType              string        `json:"surat_type"`
	SuratDate              nullable.Date `json:"surat_date"`
	Perihal                string        `json:"perihal"`
	PihakPertamaNama       string        `json:"pihak_pertama_nama"`
	PihakPertamaJabatan    string        `json:"pihak_pertama_jabatan"`
	PihakPertamaPerusahaan string        `json:"pihak_pertama_perusahaan"`
	PihakPertamaAlamat     string        `json:"pihak_pertama_alamat"`
	PihakPertamaSignature  string        `json:"pihak_pertama_signature,omitzero"`
	PihakKeduaNama         string        `json:"pihak_kedua_nama"`
	PihakKeduaJabatan      string        `json:"pihak_kedua_jabatan"`
	PihakKeduaPerusahaan   string        `json:"pihak_kedua_perusahaan"`
	PihakKeduaAlamat       string        `json:"pihak_kedua_alamat"`
	PihakKeduaSignature    string        `json:"pihak_kedua_signature,omitzero"`
	BarangItems            HandoverItems `json:"barang_items"`
	Catatan                string        `json:"catatan"`
	Status                 string        `json:"status"`
	CreatedBy              nullable.Int  `json:"created_by"`
	CreatedAt              nullable.Time `json:"created_at"`
	UpdatedAt              nullable.Time `json:"updated_at"`
}

func (s *HandoverLetter) TargetFields() []any {
	return []any{
		&s.ID, &s.SuratNumber, &s.SuratType, &s.SuratDate, &s.Perihal,
		&s.PihakPertamaNama, &s.PihakPertamaJabatan, &s.PihakPertamaPerusahaan,
		&s.PihakPertamaAlamat, &s.PihakPertamaSignature,
		&s.PihakKeduaNama, &s.PihakKeduaJabatan, &s.PihakKeduaPerusahaan,
		&s.PihakKeduaAlamat, &s.PihakKeduaSignature,
		&s.BarangItems, &s.Catatan, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	}
}

func (s *HandoverLetter) GetID() int64 {
	return s.ID
}

func (s *HandoverLetter) Type() LetterType {
	return ParseLetterType(s.SuratType)
}

func (s *HandoverLetter) First() Party {
	return Party{
		Name:      s.PihakPertamaNama,
		Title:     s.PihakPertamaJabatan,
		Company:   s.PihakPertamaPerusahaan,
		Address:   s.PihakPertamaAlamat,
		Signature: s.PihakPertamaSignature,
	}
}

func (s *HandoverLetter) Second() Party {
	return Party{
		Name:      s.PihakKeduaNama,
		Title:     s.PihakKeduaJabatan,
		Company:   s.PihakKeduaPerusahaan,
		Address:   s.PihakKeduaAlamat,
		Signature: s.PihakKeduaSignature,
	}
}

// HandoverView adds the item count and hides signatures unless asked
type HandoverView struct {
	*HandoverLetter `json:",inline"`

	ItemsCount int `json:"items_count"`
}

func (s *HandoverLetter) View(withSignatures bool) HandoverView {
	v := HandoverView{HandoverLetter: s, ItemsCount: len(s.BarangItems)}
	if !withSignatures {
		cp := *s
		cp.PihakPertamaSignature = ""
		cp.PihakKeduaSignature = ""
		v.HandoverLetter = &cp
	}
	return v
}

type HandoverPatch struct {
	SuratNumber            *string        `json:"surat_number"`
	SuratType              *string        `json:"surat_type"`
	SuratDate              *string        `json:"surat_date"`
	Perihal                *string        `json:"perihal"`
	PihakPertamaNama       *string        `json:"pihak_pertama_nama"`
	PihakPertamaJabatan    *string        `json:"pihak_pertama_jabatan"`
	PihakPertamaPerusahaan *string        `json:"pihak_pertama_perusahaan"`
	PihakPertamaAlamat     *string        `json:"pihak_pertama_alamat"`
	PihakPertamaSignature  *string        `json:"pihak_pertama_signature"`
	PihakKeduaNama         *string        `json:"pihak_kedua_nama"`
	PihakKeduaJabatan      *string        `json:"pihak_kedua_jabatan"`
	PihakKeduaPerusahaan   *string        `json:"pihak_kedua_perusahaan"`
	PihakKeduaAlamat       *string        `json:"pihak_kedua_alamat"`
	PihakKeduaSignature    *string        `json:"pihak_kedua_signature"`
	BarangItems            *HandoverItems `json:"barang_items"`
	Catatan                *string        `json:"catatan"`
	Status                 *string        `json:"status"`
}

// Apply copies every sent field onto s and fills the defaults
func (p *HandoverPatch) Apply(s *HandoverLetter, now time.Time) {
	setString(&s.SuratNumber, p.SuratNumber)
	setString(&s.SuratType, p.SuratType)
	setDate(&s.SuratDate, p.SuratDate)
	setString(&s.Perihal, p.Perihal)
	setString(&s.PihakPertamaNama, p.PihakPertamaNama)
	setString(&s.PihakPertamaJabatan, p.PihakPertamaJabatan)
	setString(&s.PihakPertamaPerusahaan, p.PihakPertamaPerusahaan)
	setString(&s.PihakPertamaAlamat, p.PihakPertamaAlamat)
	setString(&s.PihakPertamaSignature, p.PihakPertamaSignature)
	setString(&s.PihakKeduaNama, p.PihakKeduaNama)
	setString(&s.PihakKeduaJabatan, p.PihakKeduaJabatan)
	setString(&s.PihakKeduaPerusahaan, p.PihakKeduaPerusahaan)
	setString(&s.PihakKeduaAlamat, p.PihakKeduaAlamat)
	setString(&s.PihakKeduaSignature, p.PihakKeduaSignature)
	if p.BarangItems != nil {
		s.BarangItems = *p.BarangItems
	}
	setString(&s.Catatan, p.Catatan)
	setString(&s.Status, p.Status)
	s.SuratType = string(ParseLetterType(s.SuratType))
	if s.Status == "" {
		s.Status = StatusDraft
	}
	if s.BarangItems == nil {
		s.BarangItems = HandoverItems{}
	}
	s.UpdatedAt = nullable.TimeOf(now)
}
