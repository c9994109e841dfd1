package chat

import "strings"

// deteccion es el estado de trabajo de una detección: el mensaje normalizado,
// el snapshot del inventario y las capturas literales precomputadas.
type deteccion struct {
	texto    string // normalizado: minúsculas, sin tildes
	palabras []string
	snap     Snapshot

	cantidad *float64
	unidad   string
	verbo    tipoVerbo
	frase    string // mensaje sin verbos/cantidades/stopwords: candidata a producto
}

// regla es una entrada de la cadena de detección: predicado + constructor.
// La tabla se evalúa en orden estricto y la primera regla que aplica gana;
// no hay puntuación en esta etapa, las confianzas son fijas por regla.
type regla struct {
	nombre    string
	aplica    func(*deteccion) bool
	construir func(*deteccion) *ComandoInventario
}

// reglasDeteccion es la cadena de prioridad completa del detector.
// El orden es parte del contrato: moverlas cambia el comportamiento.
var reglasDeteccion = []regla{
	{
		nombre: "mensaje_corto",
		aplica: func(d *deteccion) bool { return esMensajeConversacional(d.texto) },
		construir: func(d *deteccion) *ComandoInventario {
			msg := "¡Listo! ¿Algo más en lo que te ayude?"
			if esSaludo(d.texto) {
				msg = mensajeBienvenida(d.snap)
			}
			return &ComandoInventario{
				Accion:    AccionConversacion,
				Mensaje:   msg,
				Confianza: 1.0,
			}
		},
	},
	{
		nombre: "consulta_stock",
		aplica: func(d *deteccion) bool {
			return contieneAlguna(d.palabras, palabrasConsulta) &&
				contieneAlguna(d.palabras, articulos)
		},
		construir: func(d *deteccion) *ComandoInventario {
			if p := ResolverProducto(d.frase, d.snap.Productos); p != nil {
				return &ComandoInventario{
					Accion:     AccionConsultaStock,
					Producto:   p.Nombre,
					ProductoID: p.ID,
					Mensaje:    mensajeConsultaStock(*p),
					Confianza:  0.9,
				}
			}
			sugerencias := SugerirProductos(d.frase, d.snap.Productos, 3)
			if d.frase != "" {
				// Producto nombrado pero inexistente: menos confianza que
				// una consulta a la que solo le falta el producto.
				return &ComandoInventario{
					Accion:    AccionConversacion,
					Mensaje:   mensajeProductoNoEncontrado(d.frase, sugerencias),
					Confianza: 0.5,
				}
			}
			return &ComandoInventario{
				Accion:    AccionConversacion,
				Mensaje:   mensajeConsultaSinProducto(sugerencias),
				Confianza: 0.7,
			}
		},
	},
	{
		nombre: "listado",
		aplica: func(d *deteccion) bool { return contieneAlguna(d.palabras, palabrasListado) },
		construir: func(d *deteccion) *ComandoInventario {
			if contieneAlguna(d.palabras, palabrasPedidos) {
				return &ComandoInventario{
					Accion:    AccionListarPedidos,
					Mensaje:   mensajeListaPedidos(d.snap),
					Confianza: 0.8,
				}
			}
			return &ComandoInventario{
				Accion:    AccionListarProductos,
				Mensaje:   mensajeListaProductos(d.snap),
				Confianza: 0.8,
			}
		},
	},
	{
		nombre: "stock_bajo",
		aplica: func(d *deteccion) bool { return contieneAlguna(d.palabras, palabrasStockBajo) },
		construir: func(d *deteccion) *ComandoInventario {
			return &ComandoInventario{
				Accion:    AccionStockBajo,
				Mensaje:   mensajeStockBajo(d.snap),
				Confianza: 0.8,
			}
		},
	},
	{
		nombre: "ayuda",
		aplica: func(d *deteccion) bool {
			return contieneAlguna(d.palabras, palabrasAyuda) ||
				contieneFrase(d.texto, "que puedo")
		},
		construir: func(d *deteccion) *ComandoInventario {
			return &ComandoInventario{
				Accion:    AccionAyuda,
				Mensaje:   mensajeAyuda(),
				Confianza: 0.8,
			}
		},
	},
	{
		nombre: "movimiento_con_cantidad",
		aplica: func(d *deteccion) bool { return d.verbo != verboNinguno && d.cantidad != nil },
		construir: func(d *deteccion) *ComandoInventario {
			accion := AccionSalida
			if d.verbo == verboEntrada {
				accion = AccionEntrada
			}
			if *d.cantidad <= 0 {
				// Cantidad cero no es un movimiento: pedir una válida.
				return &ComandoInventario{
					Accion:    AccionConversacion,
					Mensaje:   mensajeAclararCantidad(),
					Confianza: 0.7,
				}
			}
			if d.frase == "" {
				// Verbo y cantidad sin producto: pedir el dato, no adivinar.
				return &ComandoInventario{
					Accion:    AccionConversacion,
					Mensaje:   mensajePedirCantidad(""),
					Confianza: 0.7,
				}
			}
			if p := ResolverProducto(d.frase, d.snap.Productos); p != nil {
				unidad := d.unidad
				if unidad == "" {
					unidad = p.UnidadODefecto()
				}
				return &ComandoInventario{
					Accion:               accion,
					Producto:             p.Nombre,
					ProductoID:           p.ID,
					Cantidad:             d.cantidad,
					Unidad:               unidad,
					Mensaje:              mensajeMovimiento(accion, *p, *d.cantidad, unidad),
					Confianza:            0.9,
					RequiereConfirmacion: true,
				}
			}
			unidad := d.unidad
			if unidad == "" {
				unidad = "u"
			}
			return &ComandoInventario{
				Accion:               AccionCrearProducto,
				Producto:             d.frase,
				Cantidad:             d.cantidad,
				Unidad:               unidad,
				Mensaje:              mensajeProponerCreacion(d.frase, d.cantidad, unidad),
				Confianza:            0.5,
				RequiereConfirmacion: true,
			}
		},
	},
	{
		nombre: "movimiento_sin_cantidad",
		aplica: func(d *deteccion) bool { return d.verbo != verboNinguno && d.cantidad == nil },
		construir: func(d *deteccion) *ComandoInventario {
			if d.frase == "" {
				return &ComandoInventario{
					Accion:    AccionConversacion,
					Mensaje:   mensajePedirCantidad(""),
					Confianza: 0.7,
				}
			}
			if p := ResolverProducto(d.frase, d.snap.Productos); p != nil {
				return &ComandoInventario{
					Accion:     AccionConversacion,
					Producto:   p.Nombre,
					ProductoID: p.ID,
					Mensaje:    mensajePedirCantidad(p.Nombre),
					Confianza:  0.7,
				}
			}
			return &ComandoInventario{
				Accion:               AccionCrearProducto,
				Producto:             d.frase,
				Unidad:               "u",
				Mensaje:              mensajeProponerCreacion(d.frase, nil, "u"),
				Confianza:            0.5,
				RequiereConfirmacion: true,
			}
		},
	},
	{
		nombre: "crear_producto",
		aplica: func(d *deteccion) bool { return contieneAlguna(d.palabras, palabrasCrear) },
		construir: func(d *deteccion) *ComandoInventario {
			return &ComandoInventario{
				Accion:               AccionCrearProducto,
				Mensaje:              mensajeCrearProducto(),
				Confianza:            0.7,
				RequiereConfirmacion: true,
			}
		},
	},
	{
		nombre: "defecto",
		aplica: func(d *deteccion) bool { return true },
		construir: func(d *deteccion) *ComandoInventario {
			return &ComandoInventario{
				Accion:    AccionConversacion,
				Mensaje:   mensajeNoEntendido(),
				Confianza: 0.4,
			}
		},
	},
}

func contieneFrase(texto, frase string) bool {
	return strings.Contains(texto, frase)
}
