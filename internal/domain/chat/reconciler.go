package chat

import "strings"

// UmbralPrecedenciaReglas es la confianza mínima que debe tener el resultado
// del detector de reglas para reemplazar por completo al comando sugerido del
// LLM. Es un parámetro ajustable pendiente de validación con tráfico real,
// no una constante derivada.
var UmbralPrecedenciaReglas = 0.7

// vocabularioIngreso son las palabras que delatan una contradicción de signo:
// un comando "salida" cuyo texto habla de agregar se corrige a "entrada".
var vocabularioIngreso = []string{"agrego", "agregar", "sumo", "sumar"}

// Reconciliar fusiona la interpretación del LLM con el resultado del detector
// de reglas para el mismo mensaje. Las correcciones se aplican en orden fijo y
// cada una puede mutar el comando de trabajo; el orden es parte del contrato
// (incluida la interacción entre la corrección de signo y la anulación
// conversacional).
//
// Nunca modifica sus entradas: trabaja sobre una copia del comando del LLM.
func Reconciliar(mensajeOriginal string, llmCmd *ComandoInventario, snap Snapshot, base *ComandoInventario) *ComandoInventario {
	if llmCmd == nil {
		return base
	}
	cmd := *llmCmd
	if llmCmd.ComandoSugerido != nil {
		sugerido := *llmCmd.ComandoSugerido
		cmd.ComandoSugerido = &sugerido
	}

	// 1. Movimiento sin cantidad válida: degradar a conversación.
	if (cmd.Accion == AccionEntrada || cmd.Accion == AccionSalida) &&
		(cmd.Cantidad == nil || *cmd.Cantidad <= 0) {
		cmd.Accion = AccionConversacion
		cmd.Mensaje = mensajeAclararCantidad()
		cmd.Confianza = 0.3
		cmd.RequiereConfirmacion = false
	}

	// 2. Contradicción de signo: "salida" con texto de agregar es "entrada".
	if cmd.Accion == AccionSalida && contieneVocabularioIngreso(cmd.Mensaje) {
		cmd.Accion = AccionEntrada
	}

	// 3. El mensaje original era conversacional: anular cualquier movimiento
	// que el LLM haya inventado. Se evalúa después de la corrección de signo.
	if esMensajeConversacional(normalizarTexto(mensajeOriginal)) &&
		(cmd.Accion == AccionEntrada || cmd.Accion == AccionSalida) {
		cmd.Accion = AccionConversacion
		cmd.Mensaje = mensajeBienvenida(snap)
		cmd.Cantidad = nil
		cmd.ProductoID = ""
		cmd.Producto = ""
		cmd.Confianza = 1.0
		cmd.RequiereConfirmacion = false
	}

	// 4. Producto con nombre pero sin ID: resolver contra el catálogo.
	if cmd.Producto != "" && cmd.ProductoID == "" {
		if p := resolverPorContencion(cmd.Producto, snap.Productos); p != nil {
			cmd.ProductoID = p.ID
		}
	}

	// 5. Completar el comando sugerido con el resultado del detector y, si el
	// detector fue a la vez confiado y específico, darle precedencia total.
	if cmd.ComandoSugerido != nil && base != nil {
		s := cmd.ComandoSugerido
		if s.ProductoID == "" {
			s.ProductoID = base.ProductoID
		}
		if s.Cantidad == nil {
			s.Cantidad = base.Cantidad
		}
		if s.Unidad == "" {
			s.Unidad = base.Unidad
		}
		if base.Confianza > UmbralPrecedenciaReglas && base.ProductoID != "" && base.Accion == s.Accion {
			cmd.ComandoSugerido = &ComandoSugerido{
				Accion:     base.Accion,
				Producto:   base.Producto,
				ProductoID: base.ProductoID,
				Cantidad:   base.Cantidad,
				Unidad:     base.Unidad,
			}
		}
	}

	cmd.Normalizar()
	return &cmd
}

func contieneVocabularioIngreso(mensaje string) bool {
	texto := normalizarTexto(mensaje)
	for _, v := range vocabularioIngreso {
		if strings.Contains(texto, v) {
			return true
		}
	}
	return false
}

// resolverPorContencion busca por contención de substring en cualquier
// dirección, sin distinguir mayúsculas ni tildes.
func resolverPorContencion(nombre string, catalogo []ProductoCatalogo) *ProductoCatalogo {
	objetivo := normalizarTexto(nombre)
	if objetivo == "" {
		return nil
	}
	for i := range catalogo {
		candidato := normalizarTexto(catalogo[i].Nombre)
		if strings.Contains(candidato, objetivo) || strings.Contains(objetivo, candidato) {
			return &catalogo[i]
		}
	}
	return nil
}
