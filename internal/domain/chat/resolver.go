package chat

import "strings"

// ResolverProducto busca la mejor entrada del catálogo para una frase ya
// limpia (sin verbos, cantidades ni stopwords). Aplica cuatro estrategias en
// orden, la primera que acierta gana:
//
//  1. frase completa contra el nombre (contención en cualquier dirección, o
//     todas las palabras de la frase presentes en el nombre)
//  2. solapamiento de varias palabras clave
//  3. la palabra relevante más larga contra cada palabra del nombre
//  4. cualquier palabra, en el orden original, con solapamiento parcial
//
// Devuelve nil cuando ninguna estrategia encuentra candidato.
func ResolverProducto(frase string, catalogo []ProductoCatalogo) *ProductoCatalogo {
	frase = normalizarTexto(frase)
	if frase == "" || len(catalogo) == 0 {
		return nil
	}
	palabras := palabrasRelevantes(frase)

	// Estrategia 1: frase completa
	if len(frase) > 5 {
		for i := range catalogo {
			nombre := normalizarTexto(catalogo[i].Nombre)
			if strings.Contains(nombre, frase) || strings.Contains(frase, nombre) {
				return &catalogo[i]
			}
		}
		if len(palabras) > 0 {
			for i := range catalogo {
				nombre := normalizarTexto(catalogo[i].Nombre)
				todas := true
				for _, p := range palabras {
					if !strings.Contains(nombre, p) {
						todas = false
						break
					}
				}
				if todas {
					return &catalogo[i]
				}
			}
		}
	}

	// Estrategia 2: solapamiento de varias palabras clave
	if len(palabras) > 1 {
		necesarias := 2
		if len(palabras) < necesarias {
			necesarias = len(palabras)
		}
		for i := range catalogo {
			nombre := normalizarTexto(catalogo[i].Nombre)
			coincidencias := 0
			for _, p := range palabras {
				if strings.Contains(nombre, p) {
					coincidencias++
				}
			}
			if coincidencias >= necesarias {
				return &catalogo[i]
			}
		}
	}

	// Estrategia 3: la palabra más larga contra cada palabra del nombre.
	// Los tokens cortos del nombre ("de", "el") no identifican nada: sin el
	// filtro, cualquier palabra larga que los contenga acierta en falso.
	if larga := palabraMasLarga(palabras); larga != "" {
		for i := range catalogo {
			for _, pn := range tokenizar(normalizarTexto(catalogo[i].Nombre)) {
				if len(pn) > 2 && (strings.Contains(pn, larga) || strings.Contains(larga, pn)) {
					return &catalogo[i]
				}
			}
		}
	}

	// Estrategia 4: cualquier palabra en el orden original
	for _, p := range palabras {
		for i := range catalogo {
			for _, pn := range tokenizar(normalizarTexto(catalogo[i].Nombre)) {
				if len(pn) > 2 && (strings.Contains(pn, p) || strings.Contains(p, pn)) {
					return &catalogo[i]
				}
			}
		}
	}

	return nil
}

// SugerirProductos devuelve hasta max nombres de catálogo con algún
// solapamiento de substring con la frase, para enriquecer la respuesta
// cuando no hubo coincidencia directa.
func SugerirProductos(frase string, catalogo []ProductoCatalogo, max int) []string {
	frase = normalizarTexto(frase)
	palabras := palabrasRelevantes(frase)
	var sugerencias []string
	for i := range catalogo {
		if len(sugerencias) >= max {
			break
		}
		nombre := normalizarTexto(catalogo[i].Nombre)
		for _, p := range palabras {
			if strings.Contains(nombre, p[:min(3, len(p))]) {
				sugerencias = append(sugerencias, catalogo[i].Nombre)
				break
			}
		}
	}
	return sugerencias
}

// palabrasRelevantes filtra los tokens con valor para identificar un producto:
// más de 2 caracteres y fuera del conjunto de stopwords.
func palabrasRelevantes(frase string) []string {
	var relevantes []string
	for _, p := range tokenizar(frase) {
		if len(p) > 2 && !stopwords[p] {
			relevantes = append(relevantes, p)
		}
	}
	return relevantes
}

func palabraMasLarga(palabras []string) string {
	larga := ""
	for _, p := range palabras {
		if len(p) > len(larga) {
			larga = p
		}
	}
	return larga
}
