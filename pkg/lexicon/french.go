package lexicon

// Task label constants shared across the engine.
const (
	TypeIncident = "incident"
	TypeRequest  = "demande"

	CategoryIncidentHardware = "incident_materiel"
	CategoryIncidentSoftware = "incident_logiciel"
	CategoryIncidentNetwork  = "incident_reseau"
	CategoryIncidentSecurity = "incident_securite"
	CategoryRequestHardware  = "demande_materiel"
	CategoryRequestSoftware  = "demande_logiciel"
	CategoryRequestAccess    = "demande_acces"
	CategoryRequestInfo      = "demande_information"
	CategoryOther            = "autre"

	SentimentNegative = "negatif"
	SentimentNeutral  = "neutre"
	SentimentPositive = "positif"

	ComplexitySimple   = "simple"
	ComplexityModerate = "moyen"
	ComplexityComplex  = "complexe"
)

// DefaultFrench returns the curated French lexicon set the engine ships with.
// Entries are tuned to IT helpdesk phrasing as seen in chat support channels.
func DefaultFrench() *Set {
	return &Set{
		Type: []Lexicon{
			{Label: TypeIncident, Entries: []string{
				"ne fonctionne plus", "ne fonctionne pas", "ne marche plus", "ne marche pas",
				"en panne", "panne", "plante", "bug", "bugue", "erreur", "message d'erreur",
				"bloqué", "bloquée", "freeze", "figé", "écran bleu", "cassé", "cassée",
				"hors service", "problème", "souci", "impossible de", "n'arrive pas",
				"ne répond plus", "crash", "redémarre tout seul", "perdu mes fichiers",
				"plus de connexion", "coupé", "lent", "très lent", "ralenti",
			}},
			{Label: TypeRequest, Entries: []string{
				"j'aimerais", "je voudrais", "je souhaite", "je souhaiterais",
				"pourriez-vous", "pouvez-vous", "serait-il possible", "est-il possible",
				"demande", "besoin de", "besoin d'un", "avoir accès", "obtenir",
				"installer", "installation de", "commander", "nouveau", "nouvelle",
				"mise à disposition", "création de compte", "renouvellement",
				"comment faire", "comment puis-je", "procédure pour", "formation",
			}},
		},
		Category: []Lexicon{
			{Label: CategoryIncidentHardware, Entries: []string{
				"imprimante", "écran", "clavier", "souris", "ordinateur", "pc",
				"portable", "poste", "unité centrale", "disque dur", "batterie",
				"chargeur", "scanner", "casque", "webcam", "docking", "station d'accueil",
				"toner", "cartouche", "papier coincé", "bourrage", "ventilateur",
				"surchauffe", "ne s'allume plus", "écran noir",
			}},
			{Label: CategoryIncidentSoftware, Entries: []string{
				"logiciel", "application", "outlook", "excel", "word", "teams",
				"navigateur", "messagerie", "mail", "courriel", "licence expirée",
				"mise à jour échouée", "fichier corrompu", "macro", "plante au démarrage",
				"erreur applicative", "pilote", "windows", "session",
			}},
			{Label: CategoryIncidentNetwork, Entries: []string{
				"réseau", "internet", "wifi", "connexion", "intranet", "vpn coupé",
				"serveur injoignable", "déconnecté", "déconnexion", "câble réseau",
				"adresse ip", "dns", "proxy", "lenteur réseau", "partage inaccessible",
				"imprimante réseau",
			}},
			{Label: CategoryIncidentSecurity, Entries: []string{
				"virus", "phishing", "hameçonnage", "piraté", "piratage", "spam",
				"mot de passe compromis", "compte bloqué", "ransomware", "suspect",
				"mail suspect", "pièce jointe suspecte", "antivirus", "alerte sécurité",
				"usurpation", "fuite de données",
			}},
			{Label: CategoryRequestHardware, Entries: []string{
				"nouvel ordinateur", "nouveau poste", "nouvel écran", "deuxième écran",
				"double écran", "nouveau clavier", "nouvelle souris", "casque audio",
				"téléphone portable", "smartphone", "tablette", "matériel",
				"équipement", "remplacement de poste", "station d'accueil",
			}},
			{Label: CategoryRequestSoftware, Entries: []string{
				"installer un logiciel", "installation logiciel", "nouvelle application",
				"licence", "abonnement", "mise à jour de", "version récente",
				"suite office", "adobe", "autocad", "logiciel métier",
			}},
			{Label: CategoryRequestAccess, Entries: []string{
				"accès", "accéder", "dossier partagé", "répertoire partagé",
				"droits", "autorisation", "habilitation", "permission", "compte",
				"création de compte", "mot de passe", "réinitialiser", "vpn",
				"badge", "partage", "boîte partagée", "liste de diffusion",
			}},
			{Label: CategoryRequestInfo, Entries: []string{
				"information", "renseignement", "question", "comment faire",
				"procédure", "documentation", "mode d'emploi", "formation",
				"horaires du support", "qui contacter", "savoir si",
			}},
		},
		Urgency: []Lexicon{
			{Label: "1", Entries: []string{
				"urgent", "urgence", "critique", "immédiatement", "tout de suite",
				"bloquant", "je ne peux plus travailler", "ne peux plus travailler",
				"plus rien ne fonctionne", "production arrêtée", "grave",
				"catastrophe", "au plus vite", "impossible de travailler",
			}},
			{Label: "2", Entries: []string{
				"rapidement", "vite", "important", "prioritaire", "dès que possible",
				"avant ce soir", "aujourd'hui", "pénalisant", "gêne beaucoup",
				"réunion dans", "client attend",
			}},
			{Label: "3", Entries: []string{
				"gênant", "dérangeant", "assez important", "cette semaine",
				"dès que vous pouvez", "normal", "moyennement",
			}},
			{Label: "4", Entries: []string{
				"pas urgent", "peu urgent", "pas pressé", "mineur", "petit souci",
				"quand vous aurez le temps", "la semaine prochaine", "peu important",
			}},
			{Label: "5", Entries: []string{
				"aucune urgence", "pas du tout urgent", "un jour", "éventuellement",
				"à l'occasion", "si possible un jour", "facultatif", "pour information",
			}},
		},
		Sentiment: []Lexicon{
			{Label: SentimentNegative, Entries: []string{
				"énervé", "énervée", "frustré", "frustrée", "furieux", "furieuse",
				"inadmissible", "inacceptable", "scandaleux", "marre", "ras le bol",
				"mécontent", "mécontente", "ça suffit", "encore en panne",
				"toujours pas", "n'importe quoi", "lamentable", "déçu", "déçue",
				"agacé", "agacée", "insupportable",
			}},
			{Label: SentimentNeutral, Entries: []string{
				"bonjour", "s'il vous plaît", "cordialement", "merci d'avance",
				"je signale", "je constate", "pour information", "simple question",
				"je remarque", "veuillez",
			}},
			{Label: SentimentPositive, Entries: []string{
				"merci beaucoup", "parfait", "super", "génial", "excellent",
				"très satisfait", "satisfaite", "top", "impeccable", "bravo",
				"bonne journée", "vous êtes efficaces", "ravi", "ravie",
			}},
		},
		Complexity: []Lexicon{
			{Label: ComplexitySimple, Entries: []string{
				"simple", "rapide", "juste", "petite question", "un seul",
				"redémarrer", "mot de passe oublié", "brancher", "une icône",
			}},
			{Label: ComplexityModerate, Entries: []string{
				"parfois", "de temps en temps", "intermittent", "depuis hier",
				"plusieurs fois", "certains fichiers", "après la mise à jour",
				"seulement quand", "ça dépend",
			}},
			{Label: ComplexityComplex, Entries: []string{
				"complexe", "plusieurs services", "tout le service", "tous les postes",
				"tout le réseau", "serveur", "infrastructure", "migration",
				"récurrent", "depuis des semaines", "malgré plusieurs tentatives",
				"plusieurs utilisateurs", "base de données", "chaque redémarrage",
			}},
		},
		Filler: []string{
			"le", "la", "les", "un", "une", "des", "de", "du", "et", "ou",
			"mais", "donc", "car", "pour", "avec", "sans", "sur", "sous",
			"dans", "chez", "vers", "par", "ce", "cette", "ces", "mon", "ma",
			"mes", "son", "sa", "ses", "notre", "votre", "je", "tu", "il",
			"elle", "nous", "vous", "ils", "on", "est", "sont", "était",
			"sera", "avoir", "été", "faire", "fait", "depuis", "pendant",
			"alors", "aussi", "ainsi", "bien", "très", "trop", "peu", "ici",
			"là", "hier", "matin", "soir", "au", "aux", "que", "qui", "quoi",
			"ne", "pas", "plus", "déjà", "encore", "toujours", "jamais",
		},
	}
}
