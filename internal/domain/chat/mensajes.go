package chat

import (
	"fmt"
	"strings"
)

// Textos de respuesta del motor. Siempre en el idioma del usuario;
// los errores técnicos viajan por el envelope HTTP, nunca por aquí.

func mensajeBienvenida(snap Snapshot) string {
	empresa := snap.NombreEmpresa
	if empresa == "" {
		empresa = "tu inventario"
	}
	return fmt.Sprintf(
		"¡Hola! Soy el asistente de %s. Puedo ayudarte a:\n"+
			"• Registrar entradas y salidas: \"saco 2 cajas de tomate\"\n"+
			"• Consultar stock: \"¿cuánto queda de harina?\"\n"+
			"• Ver productos y pedidos: \"mostrar inventario\"\n"+
			"• Avisarte qué falta reponer: \"¿qué me falta pedir?\"",
		empresa,
	)
}

func mensajeAyuda() string {
	return "Puedes escribirme cosas como:\n" +
		"• \"agrego 5 kg de harina\" para registrar una entrada\n" +
		"• \"saco 2 cajas de tomate\" para registrar una salida\n" +
		"• \"¿cuánto stock de leche?\" para consultar un producto\n" +
		"• \"mostrar productos\" o \"mostrar pedidos\" para listar\n" +
		"• \"¿qué falta reponer?\" para ver el stock bajo\n" +
		"• \"crear producto\" para dar de alta uno nuevo"
}

func mensajeNoEntendido() string {
	return "No entendí tu mensaje. Prueba con algo como \"saco 2 cajas de tomate\" " +
		"o escribe \"ayuda\" para ver lo que puedo hacer."
}

func mensajePedirCantidad(producto string) string {
	if producto != "" {
		return fmt.Sprintf("¿Cuántas unidades de %s? Por ejemplo: \"saco 2 %s\".",
			producto, strings.ToLower(producto))
	}
	return "¿Qué producto y qué cantidad? Por ejemplo: \"saco 2 cajas de tomate\"."
}

func mensajeAclararCantidad() string {
	return "Necesito una cantidad mayor a cero para registrar el movimiento. " +
		"Dime por ejemplo: \"saco 2 cajas de tomate\"."
}

func mensajeMovimiento(accion Accion, p ProductoCatalogo, cantidad float64, unidad string) string {
	verbo := "sacar"
	if accion == AccionEntrada {
		verbo = "agregar"
	}
	return fmt.Sprintf("Voy a %s %s %s de %s (stock actual: %s %s). ¿Confirmas?",
		verbo, formatearCantidad(cantidad), unidad, p.Nombre,
		p.StockActual.String(), p.UnidadODefecto())
}

func mensajeProductoNoEncontrado(frase string, sugerencias []string) string {
	msg := fmt.Sprintf("No encontré \"%s\" en el catálogo.", frase)
	if len(sugerencias) > 0 {
		msg += " ¿Quisiste decir " + strings.Join(sugerencias, ", ") + "?"
	}
	msg += " Si es un producto nuevo, puedo crearlo: confirma y lo doy de alta."
	return msg
}

func mensajeConsultaStock(p ProductoCatalogo) string {
	return fmt.Sprintf("De %s quedan %s %s.", p.Nombre, p.StockActual.String(), p.UnidadODefecto())
}

func mensajeConsultaSinProducto(sugerencias []string) string {
	msg := "¿De qué producto quieres saber el stock?"
	if len(sugerencias) > 0 {
		msg += " Tengo por ejemplo: " + strings.Join(sugerencias, ", ") + "."
	}
	return msg
}

func mensajeListaProductos(snap Snapshot) string {
	if len(snap.Productos) == 0 {
		return "Todavía no hay productos en el catálogo. Escribe \"crear producto\" para dar de alta el primero."
	}
	bajos := snap.ProductosStockBajo()
	msg := fmt.Sprintf("Tienes %d productos en el catálogo.", len(snap.Productos))
	if len(bajos) > 0 {
		msg += fmt.Sprintf(" %d están en stock bajo.", len(bajos))
	}
	return msg
}

func mensajeListaPedidos(snap Snapshot) string {
	if len(snap.Pedidos) == 0 {
		return "No hay pedidos registrados."
	}
	nombres := make([]string, 0, len(snap.Pedidos))
	for _, p := range snap.Pedidos {
		nombres = append(nombres, fmt.Sprintf("%s (%d productos)", p.Nombre, p.TotalProductos))
	}
	return "Pedidos: " + strings.Join(nombres, ", ") + "."
}

func mensajeStockBajo(snap Snapshot) string {
	bajos := snap.ProductosStockBajo()
	if len(bajos) == 0 {
		return "Todo en orden: ningún producto está por debajo de su stock mínimo."
	}
	nombres := make([]string, 0, len(bajos))
	for _, p := range bajos {
		nombres = append(nombres, fmt.Sprintf("%s (%s %s)", p.Nombre, p.StockActual.String(), p.UnidadODefecto()))
	}
	return "Te falta reponer: " + strings.Join(nombres, ", ") + "."
}

func mensajeCrearProducto() string {
	return "Para crear un producto dime su nombre, unidad y stock mínimo. " +
		"Por ejemplo: \"crear producto harina, en kg, mínimo 10\"."
}

func mensajeProponerCreacion(nombre string, cantidad *float64, unidad string) string {
	msg := fmt.Sprintf("\"%s\" no existe en el catálogo. Puedo crearlo", nombre)
	if cantidad != nil {
		msg += fmt.Sprintf(" y registrar %s %s de una vez", formatearCantidad(*cantidad), unidad)
	}
	return msg + ". ¿Confirmas?"
}

func formatearCantidad(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
