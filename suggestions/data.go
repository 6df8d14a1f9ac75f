package suggestions

// DrugNames is the bundled autocomplete list, derived from commonly
// prescribed medications in the ANVISA registry. Names keep their official
// accents; matching is accent-insensitive.
var DrugNames = []string{
	"Aciclovir",
	"Ácido Acetilsalicílico",
	"Ácido Fólico",
	"Albendazol",
	"Alopurinol",
	"Amiodarona",
	"Amitriptilina",
	"Amoxicilina",
	"Amoxicilina + Clavulanato de Potássio",
	"Anlodipino",
	"Atenolol",
	"Atorvastatina",
	"Azitromicina",
	"Baclofeno",
	"Beclometasona",
	"Benzilpenicilina Benzatina",
	"Betametasona",
	"Bromazepam",
	"Bromoprida",
	"Budesonida",
	"Bupropiona",
	"Captopril",
	"Carbamazepina",
	"Carvedilol",
	"Cefalexina",
	"Ceftriaxona",
	"Cetirizina",
	"Cetoconazol",
	"Cetoprofeno",
	"Ciclobenzaprina",
	"Cimetidina",
	"Ciprofloxacino",
	"Citalopram",
	"Claritromicina",
	"Clonazepam",
	"Clopidogrel",
	"Cloreto de Sódio",
	"Clorpromazina",
	"Colchicina",
	"Dexametasona",
	"Dexclorfeniramina",
	"Diazepam",
	"Dibucaína",
	"Diclofenaco de Potássio",
	"Diclofenaco de Sódio",
	"Digoxina",
	"Diltiazem",
	"Dipirona Monoidratada",
	"Domperidona",
	"Doxazosina",
	"Doxiciclina",
	"Duloxetina",
	"Enalapril",
	"Escitalopram",
	"Esomeprazol",
	"Espironolactona",
	"Fenitoína",
	"Fenobarbital",
	"Fexofenadina",
	"Finasterida",
	"Fluconazol",
	"Fluoxetina",
	"Furosemida",
	"Gabapentina",
	"Gentamicina",
	"Glibenclamida",
	"Gliclazida",
	"Haloperidol",
	"Hidroclorotiazida",
	"Hidrocortisona",
	"Hidróxido de Alumínio",
	"Ibuprofeno",
	"Insulina NPH",
	"Insulina Regular",
	"Itraconazol",
	"Ivermectina",
	"Lactulose",
	"Lamotrigina",
	"Levodopa + Carbidopa",
	"Levofloxacino",
	"Levotiroxina Sódica",
	"Loratadina",
	"Losartana Potássica",
	"Mebendazol",
	"Meloxicam",
	"Metformina",
	"Metildopa",
	"Metoclopramida",
	"Metoprolol",
	"Metronidazol",
	"Miconazol",
	"Montelucaste",
	"Morfina",
	"Naproxeno",
	"Nifedipino",
	"Nimesulida",
	"Nistatina",
	"Nitrofurantoína",
	"Norfloxacino",
	"Nortriptilina",
	"Omeprazol",
	"Ondansetrona",
	"Oxcarbazepina",
	"Paracetamol",
	"Paroxetina",
	"Permetrina",
	"Prednisolona",
	"Prednisona",
	"Pregabalina",
	"Prometazina",
	"Propranolol",
	"Quetiapina",
	"Ranitidina",
	"Risperidona",
	"Rosuvastatina",
	"Salbutamol",
	"Sertralina",
	"Sinvastatina",
	"Sulfametoxazol + Trimetoprima",
	"Sulfato Ferroso",
	"Tadalafila",
	"Tansulosina",
	"Tramadol",
	"Trazodona",
	"Valproato de Sódio",
	"Varfarina",
	"Venlafaxina",
	"Verapamil",
	"Vitamina D3 (Colecalciferol)",
	"Zolpidem",
}
