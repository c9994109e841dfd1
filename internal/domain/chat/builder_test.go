package chat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-chat/internal/domain/chat"
)

// catalogoDemo arma el snapshot de prueba que usan casi todos los casos.
func catalogoDemo() chat.Snapshot {
	return chat.Snapshot{
		NombreEmpresa: "La Huerta",
		Productos: []chat.ProductoCatalogo{
			{
				ID: "p1", Nombre: "Tomate", Unidad: "cajas",
				StockMinimo: decimal.NewFromInt(5), StockActual: decimal.NewFromInt(12),
			},
			{
				ID: "p2", Nombre: "Leche Entera", Unidad: "litros",
				StockMinimo: decimal.NewFromInt(10), StockActual: decimal.NewFromInt(4),
			},
			{
				ID: "p3", Nombre: "Aceite de Girasol", Unidad: "botellas",
				StockMinimo: decimal.NewFromInt(6), StockActual: decimal.NewFromInt(6),
			},
		},
		Pedidos: []chat.PedidoResumen{
			{ID: "o1", Nombre: "Almacén Central", TotalProductos: 2},
		},
	}
}

// Un saludo siempre es conversación con confianza máxima.
func TestDetectar_SaludoEsConversacion(t *testing.T) {
	cmd := chat.Detectar("hola", catalogoDemo())

	assert.Equal(t, chat.AccionConversacion, cmd.Accion)
	assert.Equal(t, 1.0, cmd.Confianza)
	assert.Contains(t, cmd.Mensaje, "La Huerta", "el saludo debe presentar al asistente de la empresa")
	assert.False(t, cmd.RequiereConfirmacion)
}

// Los mensajes muy cortos y las afirmaciones del conjunto cerrado también
// son conversación con confianza 1.0.
func TestDetectar_MensajesCortosYAfirmaciones(t *testing.T) {
	for _, mensaje := range []string{"ok", "vale", "sí", "no", "gracias", "abc"} {
		cmd := chat.Detectar(mensaje, catalogoDemo())
		assert.Equal(t, chat.AccionConversacion, cmd.Accion, "mensaje %q", mensaje)
		assert.Equal(t, 1.0, cmd.Confianza, "mensaje %q", mensaje)
	}
}

// Salida con cantidad, unidad y producto resuelto.
func TestDetectar_SalidaConCantidadYProducto(t *testing.T) {
	cmd := chat.Detectar("saco 2 cajas de tomate", catalogoDemo())

	assert.Equal(t, chat.AccionSalida, cmd.Accion)
	assert.Equal(t, "p1", cmd.ProductoID)
	assert.Equal(t, "Tomate", cmd.Producto)
	require.NotNil(t, cmd.Cantidad)
	assert.Equal(t, 2.0, *cmd.Cantidad)
	assert.Equal(t, "cajas", cmd.Unidad)
	assert.Equal(t, 0.9, cmd.Confianza)
	assert.True(t, cmd.RequiereConfirmacion, "toda salida inferida exige confirmación")
}

// Entrada de un producto que no existe propone crearlo.
func TestDetectar_ProductoInexistenteProponeCreacion(t *testing.T) {
	cmd := chat.Detectar("agregá 5 kg de harina", catalogoDemo())

	assert.Equal(t, chat.AccionCrearProducto, cmd.Accion)
	assert.Equal(t, "harina", cmd.Producto)
	assert.Equal(t, "kg", cmd.Unidad)
	require.NotNil(t, cmd.Cantidad)
	assert.Equal(t, 5.0, *cmd.Cantidad)
	assert.True(t, cmd.RequiereConfirmacion)
	assert.Equal(t, 0.5, cmd.Confianza)
}

// Un producto desconocido nunca se resuelve contra una entrada del catálogo
// cuyo nombre solo coincide en sus tokens cortos ("de"): se propone crearlo
// en vez de registrar una salida confiada sobre el producto equivocado.
func TestDetectar_ProductoDesconocidoNoResuelveEnFalso(t *testing.T) {
	cmd := chat.Detectar("saco 3 cajas de verdeo", catalogoDemo())

	assert.Equal(t, chat.AccionCrearProducto, cmd.Accion)
	assert.Equal(t, "verdeo", cmd.Producto)
	assert.Empty(t, cmd.ProductoID)
	assert.Equal(t, 0.5, cmd.Confianza)
	assert.True(t, cmd.RequiereConfirmacion)
}

// Consulta de stock con resolución difusa del producto.
func TestDetectar_ConsultaStock(t *testing.T) {
	cmd := chat.Detectar("cuánto stock de leche", catalogoDemo())

	assert.Equal(t, chat.AccionConsultaStock, cmd.Accion)
	assert.Equal(t, "p2", cmd.ProductoID)
	assert.Equal(t, "Leche Entera", cmd.Producto)
	assert.Equal(t, 0.9, cmd.Confianza)
	assert.Contains(t, cmd.Mensaje, "Leche Entera")
}

// Consulta de stock que nombra un producto inexistente: confianza baja (0.5)
// y propuesta de alta. Si no nombró ninguno, solo se pide el dato (0.7).
func TestDetectar_ConsultaStockSinProducto(t *testing.T) {
	noEncontrado := chat.Detectar("cuánto stock de palta", catalogoDemo())
	assert.Equal(t, chat.AccionConversacion, noEncontrado.Accion)
	assert.Equal(t, 0.5, noEncontrado.Confianza)
	assert.Contains(t, noEncontrado.Mensaje, "palta")

	sinProducto := chat.Detectar("¿cuánto queda del stock?", catalogoDemo())
	assert.Equal(t, chat.AccionConversacion, sinProducto.Accion)
	assert.Equal(t, 0.7, sinProducto.Confianza)
}

// La detección es insensible a tildes: con o sin acento, mismo comando.
func TestDetectar_InsensibleATildes(t *testing.T) {
	conTilde := chat.Detectar("cuánto stock de leche", catalogoDemo())
	sinTilde := chat.Detectar("cuanto stock de leche", catalogoDemo())

	assert.Equal(t, conTilde, sinTilde)
}

// Un verbo solo, sin cantidad, pide el dato en vez de adivinar,
// sin importar el contenido del catálogo.
func TestDetectar_VerboSinCantidadPideDatos(t *testing.T) {
	for _, snap := range []chat.Snapshot{catalogoDemo(), {}} {
		cmd := chat.Detectar("saco", snap)
		assert.Equal(t, chat.AccionConversacion, cmd.Accion)
		assert.Equal(t, 0.7, cmd.Confianza)
		assert.Contains(t, cmd.Mensaje, "cantidad")
	}
}

// Verbo sin cantidad pero con producto conocido: pedir cuántas unidades.
func TestDetectar_VerboConProductoSinCantidad(t *testing.T) {
	cmd := chat.Detectar("saco tomates", catalogoDemo())

	assert.Equal(t, chat.AccionConversacion, cmd.Accion)
	assert.Equal(t, "p1", cmd.ProductoID)
	assert.Equal(t, 0.7, cmd.Confianza)
	assert.Contains(t, cmd.Mensaje, "Tomate")
}

func TestDetectar_ListarProductosYPedidos(t *testing.T) {
	productos := chat.Detectar("mostrar productos", catalogoDemo())
	assert.Equal(t, chat.AccionListarProductos, productos.Accion)
	assert.Equal(t, 0.8, productos.Confianza)

	pedidos := chat.Detectar("mostrar pedidos", catalogoDemo())
	assert.Equal(t, chat.AccionListarPedidos, pedidos.Accion)
	assert.Contains(t, pedidos.Mensaje, "Almacén Central")
}

func TestDetectar_StockBajo(t *testing.T) {
	cmd := chat.Detectar("qué me falta pedir", catalogoDemo())

	assert.Equal(t, chat.AccionStockBajo, cmd.Accion)
	assert.Equal(t, 0.8, cmd.Confianza)
	// Leche Entera (4 < 10) y Aceite (6 = 6) están en o bajo el mínimo.
	assert.Contains(t, cmd.Mensaje, "Leche Entera")
	assert.Contains(t, cmd.Mensaje, "Aceite de Girasol")
	assert.NotContains(t, cmd.Mensaje, "Tomate")
}

func TestDetectar_Ayuda(t *testing.T) {
	cmd := chat.Detectar("necesito ayuda", catalogoDemo())

	assert.Equal(t, chat.AccionAyuda, cmd.Accion)
	assert.Equal(t, 0.8, cmd.Confianza)
}

func TestDetectar_CrearProducto(t *testing.T) {
	cmd := chat.Detectar("quiero crear un producto", catalogoDemo())

	assert.Equal(t, chat.AccionCrearProducto, cmd.Accion)
	assert.True(t, cmd.RequiereConfirmacion)
}

// Cantidad cero no registra movimiento: se pide una cantidad válida.
func TestDetectar_CantidadCeroNoEsMovimiento(t *testing.T) {
	cmd := chat.Detectar("saco 0 cajas de tomate", catalogoDemo())

	assert.Equal(t, chat.AccionConversacion, cmd.Accion)
	assert.Equal(t, 0.7, cmd.Confianza)
}

// Mensaje sin patrón conocido: respuesta genérica con confianza baja.
func TestDetectar_SinPatronEsConversacionGenerica(t *testing.T) {
	cmd := chat.Detectar("el clima está raro últimamente", catalogoDemo())

	assert.Equal(t, chat.AccionConversacion, cmd.Accion)
	assert.Equal(t, 0.4, cmd.Confianza)
}

// Determinismo: mismas entradas, salida idéntica en llamadas repetidas.
func TestDetectar_EsDeterminista(t *testing.T) {
	snap := catalogoDemo()
	mensajes := []string{
		"hola", "saco 2 cajas de tomate", "cuánto stock de leche",
		"mostrar productos", "qué falta reponer", "agregá 5 kg de harina",
	}
	for _, m := range mensajes {
		primero := chat.Detectar(m, snap)
		for i := 0; i < 3; i++ {
			assert.Equal(t, primero, chat.Detectar(m, snap), "mensaje %q", m)
		}
	}
}

// Invariante de seguridad: toda acción mutante sale con requiereConfirmacion.
func TestDetectar_MutantesSiempreConConfirmacion(t *testing.T) {
	snap := catalogoDemo()
	mensajes := []string{
		"saco 2 cajas de tomate",
		"agrego 10 kg de cebolla morada",
		"agregá 5 kg de harina",
		"crear producto",
	}
	for _, m := range mensajes {
		cmd := chat.Detectar(m, snap)
		if cmd.Accion.EsMutante() {
			assert.True(t, cmd.RequiereConfirmacion, "mensaje %q", m)
		}
		if cmd.Accion == chat.AccionEntrada || cmd.Accion == chat.AccionSalida {
			require.NotNil(t, cmd.Cantidad, "mensaje %q", m)
			assert.Greater(t, *cmd.Cantidad, 0.0, "mensaje %q", m)
		}
	}
}
