package catalog

// Built-in prestation categories.
const (
	CategorySousTraitance = "Sous-traitance"
	CategoryLocations     = "Locations"
)

func code(value string) *string { return &value }

// DefaultGroups is the catalog seeded into an empty database.
var DefaultGroups = []Group{
	{
		Category: CategorySousTraitance,
		Options: []Prestation{
			{Key: "analyse_eau", Label: "Analyse d'eau", BudgetCode: code("S1000"), Position: 1},
			{Key: "analyse_huile", Label: "Analyse d'huile", BudgetCode: code("S1010"), Position: 2},
			{Key: "analyse_eau_nappe", Label: "Analyse eau de nappe", BudgetCode: code("S1020"), Position: 3},
			{Key: "analyse_legionnelle", Label: "Analyse légionnelle", BudgetCode: code("S1030"), Position: 4},
			{Key: "analyse_potabilite", Label: "Analyse potabilité", BudgetCode: code("S1040"), Position: 5},
			{Key: "colonnes_seches", Label: "Colonnes sèches", BudgetCode: code("S1050"), Position: 6},
			{Key: "controle_acces", Label: "Contrôle d'accès", BudgetCode: code("S1060"), Position: 7},
			{Key: "controle_ssi", Label: "Contrôle SSI", BudgetCode: code("S1070"), Position: 8},
			{Key: "detection_co", Label: "Détection CO", BudgetCode: code("S1080"), Position: 9},
			{Key: "detection_freon", Label: "Détection fréon", BudgetCode: code("S1090"), Position: 10},
			{Key: "detection_incendie", Label: "Détection incendie", BudgetCode: code("S2000"), Position: 11},
			{Key: "extincteurs", Label: "Extincteurs", BudgetCode: code("S2010"), Position: 12},
			{Key: "exutoires", Label: "Exutoires", BudgetCode: code("S2020"), Position: 13},
			{Key: "gtc", Label: "GTC", BudgetCode: code("S2030"), Position: 14},
			{Key: "inspection_video_puits", Label: "Inspection vidéo puits", BudgetCode: code("S2040"), Position: 15},
			{Key: "maintenance_cellule_hta", Label: "Maintenance cellule HTA", BudgetCode: code("S2050"), Position: 16},
			{Key: "maintenance_constructeur", Label: "Maintenance constructeur", BudgetCode: code("S2060"), Position: 17},
			{Key: "maintenance_groupe_electrogene", Label: "Maintenance groupe électrogène", BudgetCode: code("S2070"), Position: 18},
			{Key: "maintenance_groupe_froid", Label: "Maintenance groupe froid", BudgetCode: code("S2080"), Position: 19},
			{Key: "nettoyage_gaines", Label: "Nettoyage de gaines", BudgetCode: code("S3000"), Position: 20},
			{Key: "onduleurs", Label: "Onduleurs", BudgetCode: code("S3010"), Position: 21},
			{Key: "pompe_relevage", Label: "Pompe de relevage", BudgetCode: code("S3020"), Position: 22},
			{Key: "portes_automatiques", Label: "Portes automatiques", BudgetCode: code("S3030"), Position: 23},
			{Key: "portes_coupe_feu", Label: "Portes coupe-feu", BudgetCode: code("S3040"), Position: 24},
			{Key: "ramonage", Label: "Ramonage", BudgetCode: code("S3050"), Position: 25},
			{Key: "relamping", Label: "Relamping", BudgetCode: code("S3060"), Position: 26},
			{Key: "separateur_hydrocarbures", Label: "Séparateur hydrocarbures", BudgetCode: code("S3070"), Position: 27},
			{Key: "sorbonnes", Label: "Sorbonnes", BudgetCode: code("S4000"), Position: 28},
			{Key: "table_elevatrice", Label: "Table élévatrice", BudgetCode: code("S4010"), Position: 29},
			{Key: "telesurveillance", Label: "Télésurveillance", BudgetCode: code("S4020"), Position: 30},
			{Key: "thermographie", Label: "Thermographie", BudgetCode: code("S4030"), Position: 31},
			{Key: "traitement_eau", Label: "Traitement d'eau", BudgetCode: code("S4040"), Position: 32},
			{Key: "video_interphonie", Label: "Vidéo et interphonie", BudgetCode: code("S4050"), Position: 33},
		},
	},
	{
		Category: CategoryLocations,
		Options: []Prestation{
			{Key: "location_echafaudage", Label: "Location échafaudage", BudgetCode: code("L1010"), Position: 1},
			{Key: "location_groupe_electrogene", Label: "Location groupe électrogène", BudgetCode: code("L1020"), Position: 2},
			{Key: "location_nacelle", Label: "Location nacelle", BudgetCode: code("L1030"), Position: 3},
		},
	},
}
