package params

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
)

// DefaultAlarmMessage labels alarms that name no reason.
const DefaultAlarmMessage = "Alarma"

// Rule extracts the params of one intent. Rules never fail; a slot that is
// not found is left out.
type Rule func(u utterance) Params

// Extractor maps intents to their rules. Intents without a rule receive the
// whole utterance under KeyText.
type Extractor struct {
	rules map[corpus.Label]Rule
	apps  *Catalog
}

// NewExtractor returns an extractor with the built-in rule table.
func NewExtractor() *Extractor {
	e := &Extractor{apps: DefaultCatalog()}
	e.rules = map[corpus.Label]Rule{
		corpus.Memorizar:         extractMemory,
		corpus.AbrirApp:          e.extractApp,
		corpus.BuscarWeb:         extractSearch,
		corpus.ReproducirMedia:   extractMedia,
		corpus.Alarma:            extractAlarm,
		corpus.Traducir:          extractTranslation,
		corpus.Calcular:          extractExpression,
		corpus.LiberarPuerto:     extractPort,
		corpus.Brillo:            extractBrightness,
		corpus.CambiarUbicacion:  extractCity,
		corpus.ApagarSistema:     extractDelay,
		corpus.ReiniciarSistema:  extractDelay,
		corpus.PomodoroIniciar:   extractDelay,
		corpus.GamesAbrir:        extractGame,
		corpus.PerfilNombre:      extractName,
		corpus.PerfilIdioma:      extractLanguage,
		corpus.MatarProceso:      extractProcess,
		corpus.CambiarDirectorio: extractPath,
	}
	return e
}

// Labels returns the intents that have a dedicated rule.
func (e *Extractor) Labels() []corpus.Label {
	out := make([]corpus.Label, 0, len(e.rules))
	for label := range e.rules {
		out = append(out, label)
	}
	return out
}

// Extract returns the params of label found in utterance, which should
// already be normalized. The result is never nil.
func (e *Extractor) Extract(utterance string, label corpus.Label) Params {
	rule, ok := e.rules[label]
	if !ok {
		return Params{KeyText: utterance}
	}
	p := rule(newUtterance(utterance))
	if p == nil {
		p = Params{}
	}
	return p
}

var memoryTriggers = phrases(
	"memoriza", "memorizar", "guarda", "guardar", "recuerda", "recordar",
	"anota", "anotar", "anotale", "apunta", "apuntale", "registra", "almacena",
	"graba", "toma nota de", "no olvides", "no se te olvide", "acuerdate", "sara",
)

func extractMemory(u utterance) Params {
	rest := trimLeading(u.strip(memoryTriggers), "que", "esto", "de", "esta")
	if len(rest) == 0 {
		return Params{}
	}
	return Params{KeyData: join(rest)}
}

var appTriggers = phrases(
	"abre", "abrir", "abreme", "lanza", "ejecuta", "inicia", "arranca",
	"por favor", "sara",
)

func (e *Extractor) extractApp(u utterance) Params {
	rest := trimLeading(u.strip(appTriggers), "el", "la", "los", "las", "un", "una", "mi")
	if len(rest) == 0 {
		return Params{}
	}
	name := join(rest)
	p := Params{KeyAppName: name}
	if app, ok := e.apps.Resolve(name); ok {
		p[KeyApp] = app
	}
	return p
}

var searchTriggers = phrases(
	"busca", "buscar", "buscame", "investiga", "investigar", "investigame",
	"googlea", "en google", "en internet", "echame una busqueda de", "sobre",
)

func extractSearch(u utterance) Params {
	rest := trimLeading(u.strip(searchTriggers), "informacion", "de")
	if len(rest) == 0 {
		return Params{}
	}
	return Params{KeyQuery: join(rest)}
}

var mediaTriggers = phrases(
	"pon", "ponme", "ponle", "reproduce", "reproducir", "echale", "metele",
	"dale play a", "en youtube", "en spotify",
)

func extractMedia(u utterance) Params {
	rest := trimLeading(u.strip(mediaTriggers), "algo", "de", "una", "un")
	if len(rest) == 0 {
		return Params{}
	}
	return Params{KeyQuery: join(rest)}
}

var (
	durationPattern = regexp.MustCompile(`(\d+)\s*(minutos?|mins?|horas?|hrs?)\b`)
	halfHourPattern = regexp.MustCompile(`\bmedia hora\b`)
	oneHourPattern  = regexp.MustCompile(`\buna hora\b`)
	reasonTriggers  = phrases("para", "que")
)

// minutesIn finds a duration and normalises it to minutes.
func minutesIn(text string) (int, bool) {
	folded := textnorm.Fold(text)
	if m := durationPattern.FindStringSubmatch(folded); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		if strings.HasPrefix(m[2], "h") {
			n *= 60
		}
		return n, true
	}
	if halfHourPattern.MatchString(folded) {
		return 30, true
	}
	if oneHourPattern.MatchString(folded) {
		return 60, true
	}
	return 0, false
}

func extractAlarm(u utterance) Params {
	minutes, ok := minutesIn(u.text)
	if !ok {
		return Params{}
	}
	p := Params{KeyMinutes: minutes, KeyMessage: DefaultAlarmMessage}
	if reason, found := u.after(reasonTriggers); found && len(reason) > 0 {
		if _, isDuration := minutesIn(join(reason)); !isDuration {
			p[KeyMessage] = join(reason)
		}
	}
	return p
}

var (
	languages = []struct {
		code     string
		triggers []phrase
	}{
		{"en", phrases("al ingles", "en ingles")},
		{"es", phrases("al espanol", "en espanol")},
		{"fr", phrases("al frances", "en frances")},
		{"de", phrases("al aleman", "en aleman")},
		{"it", phrases("al italiano", "en italiano")},
		{"pt", phrases("al portugues", "en portugues")},
	}
	translateTriggers = phrases("traduce", "traducir", "traduceme", "como se dice", "esto")
)

func extractTranslation(u utterance) Params {
	p := Params{}
	stripped := slices.Clone(translateTriggers)
	for _, lang := range languages {
		if _, ok := p[KeyTargetLang]; !ok && u.has(lang.triggers) {
			p[KeyTargetLang] = lang.code
		}
		stripped = append(stripped, lang.triggers...)
	}
	if rest := u.strip(stripped); len(rest) > 0 {
		p[KeyText] = join(rest)
	}
	return p
}

var operatorWords = map[string]string{
	"por":          "*",
	"x":            "*",
	"multiplicado": "*",
	"multiplica":   "",
	"mas":          "+",
	"suma":         "",
	"menos":        "-",
	"resta":        "",
	"entre":        "/",
	"dividido":     "/",
	"divide":       "",
	"sobre":        "/",
}

// extractExpression rewrites spoken arithmetic as a compact expression:
// "cuánto es 50 por 3" becomes "50*3". Words that are neither numbers nor
// operators are dropped.
func extractExpression(u utterance) Params {
	var out []string
	digits := false
	push := func(tok string) {
		if isOperator(tok) && len(out) > 0 && isOperator(out[len(out)-1]) {
			out[len(out)-1] = tok
			return
		}
		out = append(out, tok)
	}

	tokens := textnorm.Words(strings.Join(u.folded, " "))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "por" && i+1 < len(tokens) && tokens[i+1] == "ciento":
			push("/")
			push("100")
			i++
			if i+1 < len(tokens) && tokens[i+1] == "de" {
				push("*")
				i++
			}
		case isNumber(tok):
			push(strings.ReplaceAll(tok, ",", "."))
			digits = true
		case isExpression(tok):
			push(strings.ReplaceAll(tok, ",", "."))
			digits = true
		case isOperator(tok) || tok == "(" || tok == ")":
			push(tok)
		default:
			if op, ok := operatorWords[tok]; ok && op != "" {
				push(op)
			}
		}
	}

	for len(out) > 0 && isOperator(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	for len(out) > 0 && isOperator(out[0]) && out[0] != "-" {
		out = out[1:]
	}
	if !digits || len(out) == 0 {
		return Params{}
	}
	return Params{KeyExpression: strings.Join(out, "")}
}

func isOperator(tok string) bool {
	switch tok {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// isExpression reports whether tok is an already written expression such
// as "2+2".
func isExpression(tok string) bool {
	digit := false
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("+-*/.,()", r):
		default:
			return false
		}
	}
	return digit
}

func isNumber(tok string) bool {
	tok = strings.ReplaceAll(tok, ",", ".")
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// firstInt returns the first integer word.
func firstInt(u utterance) (int, bool) {
	for _, w := range u.folded {
		if n, err := strconv.Atoi(w); err == nil {
			return n, true
		}
	}
	return 0, false
}

func extractPort(u utterance) Params {
	port, ok := firstInt(u)
	if !ok || port < 1 || port > 65535 {
		return Params{}
	}
	return Params{KeyPort: port}
}

var (
	brightnessUp   = phrases("sube", "subir", "aumenta", "mas")
	brightnessDown = phrases("baja", "bajar", "disminuye", "menos")
	brightnessMax  = phrases("al maximo", "maximo")
	brightnessMin  = phrases("al minimo", "minimo")
)

func extractBrightness(u utterance) Params {
	p := Params{}
	switch {
	case u.has(brightnessMax):
		p[KeyLevel] = 100
	case u.has(brightnessMin):
		p[KeyLevel] = 0
	default:
		if n, ok := firstInt(u); ok {
			p[KeyLevel] = min(max(n, 0), 100)
		}
	}
	switch {
	case u.has(brightnessUp):
		p[KeyDirection] = "up"
	case u.has(brightnessDown):
		p[KeyDirection] = "down"
	}
	return p
}

var cityTriggers = phrases(
	"ubicacion a", "ubicacion en", "ciudad a", "ciudad en", "ciudad es", "estoy en", "vivo en",
)

func extractCity(u utterance) Params {
	rest, ok := u.after(cityTriggers)
	if !ok || len(rest) == 0 {
		return Params{}
	}
	return Params{KeyCity: join(rest)}
}

func extractDelay(u utterance) Params {
	minutes, ok := minutesIn(u.text)
	if !ok {
		return Params{}
	}
	return Params{KeyMinutes: minutes}
}

var gameTriggers = phrases("abre", "abrir", "juega", "jugar", "lanza", "inicia", "el juego", "a")

func extractGame(u utterance) Params {
	rest := u.strip(gameTriggers)
	if len(rest) == 0 {
		return Params{}
	}
	return Params{KeyGame: join(rest)}
}

var nameTriggers = phrases("llamame", "mi nombre es", "me llamo", "dime")

func extractName(u utterance) Params {
	rest, ok := u.after(nameTriggers)
	if !ok || len(rest) == 0 {
		return Params{}
	}
	return Params{KeyName: join(rest)}
}

func extractLanguage(u utterance) Params {
	for _, lang := range languages {
		if u.has(lang.triggers) {
			return Params{KeyLanguage: lang.code}
		}
	}
	return Params{}
}

var processTriggers = phrases("matar", "mata", "cerrar", "cierra", "termina", "proceso", "el", "la")

func extractProcess(u utterance) Params {
	rest := u.strip(processTriggers)
	if len(rest) == 0 {
		return Params{}
	}
	return Params{KeyProcess: join(rest)}
}

var pathTriggers = phrases(
	"trabajar en", "cambiar directorio a", "cambiar carpeta a", "ir a", "navegar a",
	"abrir carpeta", "cambiar directorio", "cambiar carpeta",
)

func extractPath(u utterance) Params {
	rest, ok := u.after(pathTriggers)
	if !ok || len(rest) == 0 {
		return Params{}
	}
	return Params{KeyPath: join(trimLeading(rest, "la", "el", "carpeta", "directorio"))}
}
