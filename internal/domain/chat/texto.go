package chat

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vocabulario del detector. Todo se compara en minúsculas y sin tildes,
// así "agregá", "agrega" y "AGREGA" caen en la misma palabra.
var (
	saludos = []string{
		"hola", "holaa", "buenas", "buenos dias", "buen dia", "buenas tardes",
		"buenas noches", "hey", "saludos", "que tal", "hello", "hi",
	}

	afirmaciones = []string{
		"ok", "oka", "okey", "vale", "dale", "listo", "gracias", "perfecto",
		"genial", "bien", "si", "bueno", "ya",
	}

	negaciones = []string{
		"no", "nada", "ninguno", "ninguna", "cancelar", "cancela", "olvidalo",
	}

	verbosSalida = []string{
		"saco", "saca", "sacar", "saque", "quito", "quita", "quitar", "quite",
		"resto", "resta", "restar", "vendo", "vendi", "vender", "retiro",
		"retira", "retirar", "uso", "use", "usar", "gasto", "gaste", "gastar",
		"descuento", "descontar", "baja", "bajar",
	}

	verbosEntrada = []string{
		"agrego", "agrega", "agregar", "agregue", "pongo", "pone", "poner",
		"puse", "sumo", "suma", "sumar", "sume", "anado", "anade", "anadir",
		"anadi", "compro", "compre", "comprar", "recibo", "recibi", "recibir",
		"ingreso", "ingresa", "ingresar", "cargo", "cargar", "cargue", "meto",
		"mete", "meter",
	}

	palabrasConsulta = []string{
		"cuanto", "cuanta", "cuantos", "cuantas", "stock", "hay", "tengo",
		"queda", "quedan", "disponible", "disponibles",
	}

	articulos = []string{"de", "del", "la", "el", "los", "las", "un", "una", "al"}

	palabrasListado = []string{
		"mostrar", "muestra", "mostrame", "listar", "lista", "listado", "ver",
		"productos", "inventario",
	}

	palabrasPedidos = []string{"pedido", "pedidos", "proveedor", "proveedores"}

	palabrasStockBajo = []string{
		"falta", "faltan", "faltante", "faltantes", "bajo", "bajos", "minimo",
		"pedir", "reponer",
	}

	palabrasAyuda = []string{"ayuda", "help", "comandos", "instrucciones"}

	palabrasCrear = []string{"crea", "crear", "cree", "nuevo", "nueva", "registra", "registrar"}

	unidadesConocidas = []string{
		"u", "un", "uds", "unidad", "unidades", "caja", "cajas", "kg", "kilo",
		"kilos", "g", "gr", "gramos", "l", "lt", "litro", "litros", "ml",
		"paquete", "paquetes", "bolsa", "bolsas", "docena", "docenas", "bulto",
		"bultos", "botella", "botellas", "lata", "latas", "metro", "metros",
	}

	// Palabras sin valor para identificar un producto dentro de la frase.
	stopwords = map[string]bool{
		"de": true, "del": true, "la": true, "el": true, "los": true,
		"las": true, "un": true, "una": true, "unos": true, "unas": true,
		"al": true, "a": true, "y": true, "o": true, "en": true, "mi": true,
		"me": true, "mis": true, "por": true, "para": true, "que": true,
		"con": true, "se": true, "le": true, "lo": true, "mas": true,
		"este": true, "esta": true, "ese": true, "esa": true, "favor": true,
		"quiero": true, "necesito": true, "ahora": true, "hoy": true,
	}
)

var (
	tildesTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	reCantidad        = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
	reEspacios        = regexp.MustCompile(`\s+`)
)

// normalizarTexto deja el mensaje en minúsculas, sin tildes y con espacios colapsados.
func normalizarTexto(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if plano, _, err := transform.String(tildesTransformer, s); err == nil {
		s = plano
	}
	return reEspacios.ReplaceAllString(s, " ")
}

// tokenizar separa el texto normalizado en palabras, quitando signos de puntuación.
func tokenizar(texto string) []string {
	campos := strings.FieldsFunc(texto, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '.' && r != ','
	})
	palabras := make([]string, 0, len(campos))
	for _, c := range campos {
		c = strings.Trim(c, ".,")
		if c != "" {
			palabras = append(palabras, c)
		}
	}
	return palabras
}

func contiene(lista []string, palabra string) bool {
	for _, v := range lista {
		if v == palabra {
			return true
		}
	}
	return false
}

func contieneAlguna(palabras []string, vocabulario []string) bool {
	for _, p := range palabras {
		if contiene(vocabulario, p) {
			return true
		}
	}
	return false
}

// tipoVerbo clasifica el verbo de movimiento detectado en el mensaje.
type tipoVerbo int

const (
	verboNinguno tipoVerbo = iota
	verboEntrada
	verboSalida
)

// detectarVerbo busca el primer verbo de ingreso o egreso del mensaje.
func detectarVerbo(palabras []string) tipoVerbo {
	for _, p := range palabras {
		if contiene(verbosSalida, p) {
			return verboSalida
		}
		if contiene(verbosEntrada, p) {
			return verboEntrada
		}
	}
	return verboNinguno
}

// extraerCantidad busca el primer token numérico y, si la palabra siguiente es
// una unidad conocida, también la unidad. "2 cajas de tomate" -> (2, "cajas").
func extraerCantidad(palabras []string) (cantidad *float64, unidad string) {
	for i, p := range palabras {
		m := reCantidad.FindString(p)
		if m == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
		if err != nil {
			continue
		}
		if v < 0 {
			v = -v
		}
		cantidad = &v
		if i+1 < len(palabras) && contiene(unidadesConocidas, palabras[i+1]) {
			unidad = palabras[i+1]
		}
		return cantidad, unidad
	}
	return nil, ""
}

// limpiarFrase quita del mensaje los verbos, cantidades, unidades, palabras de
// consulta y stopwords; lo que queda es la frase candidata a nombre de producto.
func limpiarFrase(palabras []string) string {
	var restantes []string
	for _, p := range palabras {
		switch {
		case stopwords[p]:
		case contiene(verbosSalida, p) || contiene(verbosEntrada, p):
		case contiene(unidadesConocidas, p):
		case contiene(palabrasConsulta, p):
		case reCantidad.MatchString(p):
		default:
			restantes = append(restantes, p)
		}
	}
	return strings.Join(restantes, " ")
}

// esSaludo indica si el mensaje es o empieza con un saludo del conjunto cerrado.
func esSaludo(texto string) bool {
	if contiene(saludos, texto) {
		return true
	}
	for _, s := range []string{"hola", "buenas", "buenos", "buen dia", "hey", "saludos"} {
		if strings.HasPrefix(texto, s) {
			return true
		}
	}
	return false
}

// esMensajeConversacional es el predicado compartido por la regla 1 del detector
// y la regla 3 del reconciliador: mensajes muy cortos o del conjunto cerrado de
// saludos/afirmaciones/negaciones son siempre conversación.
// Excepción: un mensaje que consiste solo en un verbo de movimiento ("saco") no
// es charla, es un comando incompleto al que hay que pedirle la cantidad.
func esMensajeConversacional(texto string) bool {
	if contiene(verbosSalida, texto) || contiene(verbosEntrada, texto) {
		return false
	}
	if len([]rune(texto)) <= 5 {
		return true
	}
	return esSaludo(texto) || contiene(afirmaciones, texto) || contiene(negaciones, texto)
}
