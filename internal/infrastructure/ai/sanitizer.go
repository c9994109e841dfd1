package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-chat/internal/domain"
	"github.com/jhoicas/inventario-chat/internal/domain/chat"
)

// parsearComando extrae un comando canónico del texto crudo del modelo.
// El payload del LLM se trata como una unión etiquetada no confiable: cada
// campo se valida por tipo antes de usarse, los campos desconocidos se
// ignoran, las cantidades se llevan a valor absoluto y los faltantes reciben
// defaults seguros (confianza 0.5, sin confirmación implícita).
func parsearComando(raw string) (*chat.ComandoInventario, error) {
	texto := extraerJSON(raw)
	if texto == "" {
		return nil, fmt.Errorf("%w: sin objeto JSON en %q", domain.ErrRespuestaLLMInvalida, resumir(raw))
	}

	var campos map[string]any
	if err := json.Unmarshal([]byte(texto), &campos); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRespuestaLLMInvalida, err)
	}

	cmd := &chat.ComandoInventario{
		Accion:    chat.AccionConversacion, // variante segura por defecto
		Confianza: 0.5,
	}

	if accion := chat.Accion(leerString(campos, "accion")); accion.EsValida() {
		cmd.Accion = accion
	}
	cmd.Producto = leerString(campos, "producto")
	cmd.ProductoID = leerString(campos, "productoId")
	cmd.Unidad = leerString(campos, "unidad")
	cmd.Mensaje = leerString(campos, "mensaje")
	if cmd.Mensaje == "" {
		cmd.Mensaje = "Entendido. ¿Confirmas la acción sugerida?"
	}
	if v, ok := leerNumero(campos, "cantidad"); ok {
		abs := math.Abs(v)
		cmd.Cantidad = &abs
	}
	if v, ok := leerNumero(campos, "stockMinimo"); ok {
		abs := math.Abs(v)
		cmd.StockMinimo = &abs
	}
	if v, ok := leerNumero(campos, "confianza"); ok {
		cmd.Confianza = v
	}
	if v, ok := campos["requiereConfirmacion"].(bool); ok {
		cmd.RequiereConfirmacion = v
	}

	if anidado, ok := campos["comandoSugerido"].(map[string]any); ok {
		sugerido := &chat.ComandoSugerido{
			Producto:   leerString(anidado, "producto"),
			ProductoID: leerString(anidado, "productoId"),
			Unidad:     leerString(anidado, "unidad"),
		}
		if accion := chat.Accion(leerString(anidado, "accion")); accion.EsValida() {
			sugerido.Accion = accion
		}
		if v, ok := leerNumero(anidado, "cantidad"); ok {
			abs := math.Abs(v)
			sugerido.Cantidad = &abs
		}
		cmd.ComandoSugerido = sugerido
	}

	cmd.Normalizar()
	return cmd, nil
}

// extraerJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Cortar desde la primera '{' hasta la última '}'.
func extraerJSON(texto string) string {
	texto = strings.TrimSpace(texto)
	if idx := strings.Index(texto, "```"); idx != -1 {
		despues := texto[idx+3:]
		if nl := strings.Index(despues, "\n"); nl != -1 {
			despues = despues[nl+1:]
		}
		if cierre := strings.LastIndex(despues, "```"); cierre != -1 {
			despues = despues[:cierre]
		}
		texto = strings.TrimSpace(despues)
	}

	inicio := strings.Index(texto, "{")
	fin := strings.LastIndex(texto, "}")
	if inicio == -1 || fin == -1 || fin < inicio {
		return ""
	}
	return strings.TrimSpace(texto[inicio : fin+1])
}

func leerString(campos map[string]any, clave string) string {
	v, ok := campos[clave]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// leerNumero acepta números JSON y números escritos como string ("2", "2.5").
func leerNumero(campos map[string]any, clave string) (float64, bool) {
	switch v := campos[clave].(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func resumir(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "…"
	}
	return s
}
