package database

import "time"

// Procedural status values as stored in the dataset.
const (
	StatusOpen   = "En trámite"
	StatusClosed = "Terminada"
)

// MetadataLastRefresh is the metadata key recording the last dataset load.
const MetadataLastRefresh = "ultima_actualizacion"

// Case is one judicial case (expediente), the central record of the dataset.
type Case struct {
	CaseNumber     string     `gorm:"column:numero_expediente;primaryKey" json:"numero_expediente"`
	Caption        string     `gorm:"column:caratula" json:"caratula"`
	Status         string     `gorm:"column:estado_procesal;index" json:"estado_procesal"`
	Court          string     `gorm:"column:tribunal;index" json:"tribunal"`
	Prosecutor     string     `gorm:"column:fiscal" json:"fiscal"`
	Office         string     `gorm:"column:fiscalia" json:"fiscalia"`
	Forum          string     `gorm:"column:fuero" json:"fuero"`
	Jurisdiction   string     `gorm:"column:jurisdiccion" json:"jurisdiccion"`
	StartYear      *int       `gorm:"column:ano_inicio;index" json:"ano_inicio"`
	StartDate      *time.Time `gorm:"column:fecha_inicio" json:"fecha_inicio"`
	ResolutionDate *time.Time `gorm:"column:fecha_resolucion" json:"fecha_resolucion"`
	ElevationDate  *time.Time `gorm:"column:fecha_elevacion" json:"fecha_elevacion"`
	LastMovement   *time.Time `gorm:"column:fecha_ultimo_movimiento" json:"fecha_ultimo_movimiento"`
}

// TableName specifies the table name for the Case model
func (Case) TableName() string {
	return "expediente"
}

// Court is one tribunal as named in the source dataset.
type Court struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"column:nombre;uniqueIndex" json:"nombre"`
	Forum  string `gorm:"column:fuero" json:"fuero"`
	Locale string `gorm:"column:localidad" json:"localidad"`
}

// TableName specifies the table name for the Court model
func (Court) TableName() string {
	return "tribunal"
}

// Judge is a sitting judge, related to courts through CourtJudge.
type Judge struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:nombre;uniqueIndex" json:"nombre"`
}

// TableName specifies the table name for the Judge model
func (Judge) TableName() string {
	return "juez"
}

// CourtJudge links judges to the courts they sit on.
type CourtJudge struct {
	CourtID uint `gorm:"column:tribunal_id;primaryKey" json:"tribunal_id"`
	JudgeID uint `gorm:"column:juez_id;primaryKey" json:"juez_id"`
}

// TableName specifies the table name for the CourtJudge model
func (CourtJudge) TableName() string {
	return "tribunal_juez"
}

// Party is a person or entity appearing in a case.
type Party struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseNumber string `gorm:"column:numero_expediente;index" json:"numero_expediente"`
	Name       string `gorm:"column:nombre" json:"nombre"`
}

// TableName specifies the table name for the Party model
func (Party) TableName() string {
	return "parte"
}

// PartyRole is the role a party plays in a case (denunciado, denunciante, ...).
type PartyRole struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CaseNumber string `gorm:"column:numero_expediente;index" json:"numero_expediente"`
	Name       string `gorm:"column:nombre;index" json:"nombre"`
	Role       string `gorm:"column:rol" json:"rol"`
}

// TableName specifies the table name for the PartyRole model
func (PartyRole) TableName() string {
	return "rol_parte"
}

// CrimeType is a catalog entry for a parsed crime.
type CrimeType struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"column:nombre;uniqueIndex" json:"nombre"`
	Article string `gorm:"column:articulo" json:"articulo"`
	Code    string `gorm:"column:codigo" json:"codigo"`
}

// TableName specifies the table name for the CrimeType model
func (CrimeType) TableName() string {
	return "tipo_delito"
}

// CaseCrime links a case to the crimes it charges.
type CaseCrime struct {
	CaseNumber  string `gorm:"column:numero_expediente;primaryKey" json:"numero_expediente"`
	CrimeTypeID uint   `gorm:"column:tipo_delito_id;primaryKey" json:"tipo_delito_id"`
}

// TableName specifies the table name for the CaseCrime model
func (CaseCrime) TableName() string {
	return "expediente_delito"
}

// Jurisdiction is a catalog of jurisdiction names.
type Jurisdiction struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:nombre;uniqueIndex" json:"nombre"`
}

// TableName specifies the table name for the Jurisdiction model
func (Jurisdiction) TableName() string {
	return "jurisdiccion"
}

// Forum is a catalog of forum (fuero) names.
type Forum struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:nombre;uniqueIndex" json:"nombre"`
}

// TableName specifies the table name for the Forum model
func (Forum) TableName() string {
	return "fuero"
}

// Metadata is a key/value record about the dataset itself.
type Metadata struct {
	Key   string `gorm:"column:clave;primaryKey" json:"clave"`
	Value string `gorm:"column:valor" json:"valor"`
}

// TableName specifies the table name for the Metadata model
func (Metadata) TableName() string {
	return "metadata"
}
