package chat

// Detectar es el camino determinista del motor: convierte un mensaje libre y
// un snapshot del inventario en un comando canónico, recorriendo la cadena de
// reglas en orden estricto. Es una función pura: mismas entradas, misma salida
// byte a byte, sin estado entre llamadas.
//
// Corre siempre, con o sin LLM habilitado: es el motor por defecto y a la vez
// el validador/fallback del camino LLM.
func Detectar(mensaje string, snap Snapshot) *ComandoInventario {
	texto := normalizarTexto(mensaje)
	palabras := tokenizar(texto)
	cantidad, unidad := extraerCantidad(palabras)

	d := &deteccion{
		texto:    texto,
		palabras: palabras,
		snap:     snap,
		cantidad: cantidad,
		unidad:   unidad,
		verbo:    detectarVerbo(palabras),
		frase:    limpiarFrase(palabras),
	}

	for _, r := range reglasDeteccion {
		if r.aplica(d) {
			cmd := r.construir(d)
			cmd.Normalizar()
			return cmd
		}
	}

	// Inalcanzable: la última regla de la cadena siempre aplica.
	cmd := &ComandoInventario{
		Accion:    AccionConversacion,
		Mensaje:   mensajeNoEntendido(),
		Confianza: 0.4,
	}
	cmd.Normalizar()
	return cmd
}
